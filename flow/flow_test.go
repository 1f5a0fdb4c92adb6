package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/logging"
	"github.com/Roand-7/Lokaah-sub001/model"
	"github.com/Roand-7/Lokaah-sub001/session"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// testFlowAgent is a minimal FlowAgent for exercising flows without the
// agent package (avoids an import cycle in tests).
type testFlowAgent struct {
	name      string
	llm       model.Model
	tools     map[string]tool.Tool
	subAgents []FlowAgent
	transfer  bool
	streaming bool
	outputKey string
}

func (a *testFlowAgent) GetName() string          { return a.name }
func (a *testFlowAgent) GetLLM() model.Model      { return a.llm }
func (a *testFlowAgent) GetSubAgents() []FlowAgent { return a.subAgents }
func (a *testFlowAgent) GetTools() map[string]tool.Tool {
	if a.tools == nil {
		return map[string]tool.Tool{}
	}
	return a.tools
}
func (a *testFlowAgent) IsFunctionCallingEnabled() bool { return true }
func (a *testFlowAgent) IsStreamingEnabled() bool       { return a.streaming }
func (a *testFlowAgent) IsTransferEnabled() bool        { return a.transfer }
func (a *testFlowAgent) GetOutputKey() string           { return a.outputKey }
func (a *testFlowAgent) MaxHistoryMessages() int        { return 20 }
func (a *testFlowAgent) ResolveInstructions(*core.RunContext) (string, error) {
	return "You are VEDA, a maths tutor.", nil
}
func (a *testFlowAgent) ExecuteTool(tc *core.ToolContext, name, args string) (any, error) {
	return executeTool(a.GetTools(), tc, name, args)
}
func (a *testFlowAgent) TransferToAgent(*core.RunContext, string) error { return nil }

func newFlowRunContext(t *testing.T, userText string) *core.RunContext {
	t.Helper()

	store := session.NewInMemoryStore()
	sess, err := store.Create("sess")
	require.NoError(t, err)

	// Appends land in the store; the flow refreshes its snapshot per turn.
	require.NoError(t, store.AppendEvent("sess", core.NewUserMessageEvent("run", userText)))

	return core.NewRunContext(
		context.Background(),
		"sess", "run",
		core.AgentInfo{Name: "VEDA", Type: "tutor"},
		core.NewTextContent("user", userText),
		0,
		make(chan core.Event, 100),
		nil,
		sess,
		store,
		nil,
		nil,
		logging.NoOpLogger{},
	)
}

func collectEvents(t *testing.T, ch <-chan core.Event) []core.Event {
	t.Helper()
	var events []core.Event
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func TestSingleAgentFlowFinalResponse(t *testing.T) {
	llm := model.NewScriptedModel("scripted")
	llm.AddReply("explain fractions", "A fraction shows parts of a whole.")

	agent := &testFlowAgent{name: "VEDA", llm: llm}
	runCtx := newFlowRunContext(t, "explain fractions")

	eventChan, err := NewSingleAgentFlow(agent).Execute(runCtx)
	require.NoError(t, err)

	events := collectEvents(t, eventChan)
	require.NotEmpty(t, events)

	final := events[len(events)-1]
	assert.Equal(t, "A fraction shows parts of a whole.", final.Text())
	require.NotNil(t, final.TurnComplete)
	assert.True(t, *final.TurnComplete)
}

func TestSingleAgentFlowStreamingChunks(t *testing.T) {
	llm := model.NewScriptedModel("scripted")
	llm.AddReply("hi", "ok")

	agent := &testFlowAgent{name: "VEDA", llm: llm, streaming: true}
	runCtx := newFlowRunContext(t, "hi")

	eventChan, err := NewSingleAgentFlow(agent).Execute(runCtx)
	require.NoError(t, err)

	events := collectEvents(t, eventChan)

	partials := 0
	for _, ev := range events {
		if ev.IsPartial() {
			partials++
		}
	}
	assert.Equal(t, 2, partials, "per-rune chunks for 'ok'")
	assert.False(t, events[len(events)-1].IsPartial())
}

func TestBaseFlowOutputKey(t *testing.T) {
	llm := model.NewScriptedModel("scripted")
	llm.AddReply("hello", "Namaste!")

	agent := &testFlowAgent{name: "VEDA", llm: llm, outputKey: "last_reply"}
	runCtx := newFlowRunContext(t, "hello")

	eventChan, err := NewSingleAgentFlow(agent).Execute(runCtx)
	require.NoError(t, err)

	events := collectEvents(t, eventChan)
	final := events[len(events)-1]
	assert.Equal(t, "Namaste!", final.Actions.StateDelta["last_reply"])
}

func TestBaseFlowModelCallLimit(t *testing.T) {
	llm := model.NewScriptedModel("scripted")
	agent := &testFlowAgent{name: "VEDA", llm: llm}

	store := session.NewInMemoryStore()
	sess, _ := store.Create("sess")
	require.NoError(t, store.AppendEvent("sess", core.NewUserMessageEvent("run", "hi")))

	runCtx := core.NewRunContext(
		context.Background(), "sess", "run",
		core.AgentInfo{Name: "VEDA", Type: "tutor"},
		core.NewTextContent("user", "hi"),
		0,
		make(chan core.Event, 10), nil, sess, store, nil, nil, logging.NoOpLogger{},
	)
	runCtx.Limiter = core.NewModelLimiter(1)
	require.NoError(t, runCtx.Limiter.Increment()) // budget already spent

	eventChan, err := NewSingleAgentFlow(agent).Execute(runCtx)
	require.NoError(t, err)

	events := collectEvents(t, eventChan)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].ErrorMessage)
	assert.Contains(t, *events[0].ErrorMessage, "max model calls")
}

func TestSelector(t *testing.T) {
	isolated := &testFlowAgent{name: "solo"}
	assert.IsType(t, &SingleAgentFlow{}, NewSelector().SelectFlow(isolated))

	parent := &testFlowAgent{name: "root", transfer: true, subAgents: []FlowAgent{isolated}}
	assert.IsType(t, &MultiAgentFlow{}, NewSelector().SelectFlow(parent))
}
