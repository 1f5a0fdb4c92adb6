package agent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/model"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// recordingAgent notes each Run in a shared log and optionally emits a reply
// or fails.
type recordingAgent struct {
	BaseAgent
	log  *[]string
	text string
	fail bool
}

func (a *recordingAgent) Run(runCtx *core.RunContext) error {
	*a.log = append(*a.log, a.Name())
	if a.fail {
		return fmt.Errorf("boom")
	}
	if a.text != "" {
		return reply(runCtx, a.text)
	}
	return nil
}

// countdownAgent replies "round N" until it reaches stopAt, then "stop now".
type countdownAgent struct {
	BaseAgent
	runs   int
	stopAt int
}

func (a *countdownAgent) Run(runCtx *core.RunContext) error {
	a.runs++
	if a.runs >= a.stopAt {
		return reply(runCtx, "stop now")
	}
	return reply(runCtx, fmt.Sprintf("round %d", a.runs))
}

// escalatingAgent raises an escalation event on every Run.
type escalatingAgent struct {
	BaseAgent
	runs int
}

func (a *escalatingAgent) Run(runCtx *core.RunContext) error {
	a.runs++
	content := core.NewTextContent("assistant", "needs a teacher")
	return runCtx.EmitEvent(CreateEscalationEvent(runCtx.RunID, a.Name(), &content))
}

func TestBaseAgentLifecycle(t *testing.T) {
	h := newTutorHarness(t)
	v := NewVeda()

	require.NoError(t, v.Start(h.runCtx))
	assert.Error(t, v.Start(h.runCtx), "double start must fail")
	require.NoError(t, v.Stop(h.runCtx))
	assert.Error(t, v.Stop(h.runCtx), "double stop must fail")
}

func TestBaseAgentHierarchy(t *testing.T) {
	v := NewVeda()
	p := NewPulse()

	require.NoError(t, v.SetSubAgents(p))
	require.Len(t, v.SubAgents(), 1)
	assert.NotNil(t, p.Parent())

	assert.Equal(t, NamePulse, v.FindAgent(NamePulse).Name())
	assert.NotNil(t, v.FindAgent(NameVeda))
	assert.Nil(t, v.FindAgent("NOBODY"))
}

func TestSequentialAgentRunsInOrder(t *testing.T) {
	h := newTutorHarness(t)

	var log []string
	seq := NewSequentialAgent("plan",
		&recordingAgent{BaseAgent: NewBaseAgent("one"), log: &log},
		&recordingAgent{BaseAgent: NewBaseAgent("two"), log: &log},
		&recordingAgent{BaseAgent: NewBaseAgent("three"), log: &log},
	)

	require.NoError(t, seq.Run(h.runCtx))
	assert.Equal(t, []string{"one", "two", "three"}, log)
}

func TestSequentialAgentStopsOnError(t *testing.T) {
	h := newTutorHarness(t)

	var log []string
	seq := NewSequentialAgent("plan",
		&recordingAgent{BaseAgent: NewBaseAgent("one"), log: &log},
		&recordingAgent{BaseAgent: NewBaseAgent("two"), log: &log, fail: true},
		&recordingAgent{BaseAgent: NewBaseAgent("three"), log: &log},
	)

	err := seq.Run(h.runCtx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sequential execution failed at agent two")
	assert.Equal(t, []string{"one", "two"}, log)
}

func TestLoopAgentMaxIters(t *testing.T) {
	h := newTutorHarness(t)

	var log []string
	child := &recordingAgent{BaseAgent: NewBaseAgent("round"), log: &log, text: "again"}
	loop := NewLoopAgent("loop", child, WithMaxIters(3))

	require.NoError(t, loop.Run(h.runCtx))
	assert.Len(t, log, 3)
}

func TestLoopAgentPredicateStops(t *testing.T) {
	h := newTutorHarness(t)

	child := &countdownAgent{BaseAgent: NewBaseAgent("round"), stopAt: 2}
	loop := NewLoopAgent("loop", child,
		WithMaxIters(10),
		WithPredicate(func(out string) bool { return out == "stop now" }),
	)

	require.NoError(t, loop.Run(h.runCtx))
	assert.Equal(t, 2, child.runs)
}

func TestLoopAgentEscalationTerminates(t *testing.T) {
	h := newTutorHarness(t)

	child := &escalatingAgent{BaseAgent: NewBaseAgent("worried")}
	loop := NewLoopAgent("loop", child, WithMaxIters(10))

	require.NoError(t, loop.Run(h.runCtx), "escalation ends the loop without error")
	assert.Equal(t, 1, child.runs)
}

func TestLoopAgentStopOnError(t *testing.T) {
	h := newTutorHarness(t)

	var log []string
	child := &recordingAgent{BaseAgent: NewBaseAgent("flaky"), log: &log, fail: true}

	err := NewLoopAgent("loop", child, WithMaxIters(5)).Run(h.runCtx)
	require.Error(t, err)
	assert.Len(t, log, 1)

	log = nil
	require.NoError(t, NewLoopAgent("loop", child,
		WithMaxIters(5), WithStopOnError(false)).Run(h.runCtx))
	assert.Len(t, log, 5)
}

func TestInstructionStatic(t *testing.T) {
	h := newTutorHarness(t)

	ins := NewInstructionFromText("You are VEDA.")
	assert.True(t, ins.IsStatic())

	text, err := ins.Resolve(h.runCtx)
	require.NoError(t, err)
	assert.Equal(t, "You are VEDA.", text)
}

func TestInstructionProvider(t *testing.T) {
	h := newTutorHarness(t)
	h.runCtx.SetState(core.StateKeyStreak, 5)

	ins := NewInstructionFromFunc(func(rc *core.RunContext) (string, error) {
		v, _ := rc.GetState(core.StateKeyStreak)
		return fmt.Sprintf("Streak is %v.", v), nil
	})
	assert.False(t, ins.IsStatic())

	text, err := ins.Resolve(h.runCtx)
	require.NoError(t, err)
	assert.Equal(t, "Streak is 5.", text)

	// Clear the staged delta so later assertions see a clean buffer.
	h.runCtx.StateDelta = map[string]any{}
}

func TestModelAgentRun(t *testing.T) {
	llm := model.NewScriptedModel("scripted")
	llm.AddReply("hi veda", "Hello! What shall we learn today?")

	agent := NewModelAgent(NameVeda, llm, func(o *ModelAgentOptions) {
		o.EnableStreaming = false
		o.Instruction = NewInstructionFromText("You are VEDA, a maths tutor.")
	})

	h := newTutorHarness(t)
	events := h.turn(t, agent, "hi veda")

	require.NotEmpty(t, events)
	final := events[len(events)-1]
	assert.Equal(t, "Hello! What shall we learn today?", final.Text())
	require.NotNil(t, final.TurnComplete)
	assert.True(t, *final.TurnComplete)
}

func TestModelAgentToolRegistry(t *testing.T) {
	llm := model.NewScriptedModel("scripted")
	agent := NewModelAgent(NameVeda, llm)
	assert.Empty(t, agent.ListTools())

	echo := tool.NewFunctionTool("echo", "echoes its input",
		map[string]any{"type": "object"},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			return args, nil
		})

	agent.RegisterTool(echo)
	assert.True(t, agent.HasTool("echo"))

	got, ok := agent.GetTool("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", got.Name())

	// GetTools hands out a copy; mutating it must not touch the registry.
	tools := agent.GetTools()
	delete(tools, "echo")
	assert.True(t, agent.HasTool("echo"))

	assert.True(t, agent.UnregisterTool("echo"))
	assert.False(t, agent.UnregisterTool("echo"))

	agent.RegisterTools(echo, tool.NewFunctionTool("noop", "does nothing", nil,
		func(_ *core.ToolContext, _ map[string]any) (any, error) { return nil, nil }))
	assert.Len(t, agent.ListTools(), 2)

	agent.ClearTools()
	assert.Empty(t, agent.ListTools())
}
