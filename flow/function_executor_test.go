package flow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/logging"
	"github.com/Roand-7/Lokaah-sub001/session"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// feMockTool is a configurable tool for executor tests.
type feMockTool struct {
	name        string
	delay       time.Duration
	result      any
	err         error
	panicMsg    any
	actionState map[string]any
	transferTo  string
}

func (mt *feMockTool) Name() string               { return mt.name }
func (mt *feMockTool) Description() string        { return "mock tool" }
func (mt *feMockTool) Parameters() map[string]any { return map[string]any{} }
func (mt *feMockTool) Call(tc *core.ToolContext, _ map[string]any) (any, error) {
	if mt.delay > 0 {
		select {
		case <-time.After(mt.delay):
		case <-tc.Context().Done():
			return nil, tc.Context().Err()
		}
	}
	if mt.panicMsg != nil {
		panic(mt.panicMsg)
	}
	for k, v := range mt.actionState {
		tc.SetState(k, v)
	}
	if mt.transferTo != "" {
		tc.TransferToAgent(mt.transferTo)
	}
	return mt.result, mt.err
}

func newExecutorRunContext(t *testing.T) *core.RunContext {
	t.Helper()

	store := session.NewInMemoryStore()
	sess, err := store.Create("sess")
	require.NoError(t, err)

	return core.NewRunContext(
		context.Background(), "sess", "run",
		core.AgentInfo{Name: "ORACLE", Type: "tutor"},
		core.NewTextContent("user", "msg"),
		0,
		make(chan core.Event, 100), nil, sess, store, nil, nil, logging.NoOpLogger{},
	)
}

func TestFunctionExecutorSingle(t *testing.T) {
	tools := map[string]tool.Tool{
		"one": &feMockTool{name: "one", result: 42},
	}
	agent := &testFlowAgent{name: "ORACLE", tools: tools}
	exec := NewParallelFunctionExecutor(FunctionExecutorConfig{MaxParallel: 4, PreserveOrder: true})
	rc := newExecutorRunContext(t)

	var events []core.Event
	emit := func(ev core.Event) error { events = append(events, ev); return nil }

	exec.Execute(rc, agent, tools, []core.FunctionCall{{ID: "1", Name: "one", Arguments: "{}"}}, emit)

	require.Len(t, events, 1)
	responses := events[0].GetFunctionResponses()
	require.Len(t, responses, 1)
	assert.Equal(t, "one", responses[0].Name)
	assert.Equal(t, 42, responses[0].Response)
}

func TestFunctionExecutorPreserveOrder(t *testing.T) {
	tools := map[string]tool.Tool{
		"slow": &feMockTool{name: "slow", delay: 40 * time.Millisecond, result: "s"},
		"fast": &feMockTool{name: "fast", delay: 5 * time.Millisecond, result: "f"},
	}
	agent := &testFlowAgent{name: "ORACLE", tools: tools}
	exec := NewParallelFunctionExecutor(FunctionExecutorConfig{PreserveOrder: true})
	rc := newExecutorRunContext(t)

	var events []core.Event
	emit := func(ev core.Event) error { events = append(events, ev); return nil }

	exec.Execute(rc, agent, tools, []core.FunctionCall{
		{ID: "1", Name: "slow", Arguments: "{}"},
		{ID: "2", Name: "fast", Arguments: "{}"},
	}, emit)

	require.Len(t, events, 2)
	assert.Equal(t, "slow", events[0].GetFunctionResponses()[0].Name)
	assert.Equal(t, "fast", events[1].GetFunctionResponses()[0].Name)
}

func TestFunctionExecutorAppliesToolActions(t *testing.T) {
	tools := map[string]tool.Tool{
		"stateful": &feMockTool{name: "stateful", result: "ok",
			actionState: map[string]any{core.StateKeyStreak: 3}, transferTo: "SPARK"},
	}
	agent := &testFlowAgent{name: "ORACLE", tools: tools}
	exec := NewParallelFunctionExecutor(FunctionExecutorConfig{})
	rc := newExecutorRunContext(t)

	var events []core.Event
	emit := func(ev core.Event) error { events = append(events, ev); return nil }

	exec.Execute(rc, agent, tools, []core.FunctionCall{{ID: "1", Name: "stateful", Arguments: "{}"}}, emit)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, 3, ev.Actions.StateDelta[core.StateKeyStreak])
	require.NotNil(t, ev.Actions.TransferToAgent)
	assert.Equal(t, "SPARK", *ev.Actions.TransferToAgent)
}

func TestFunctionExecutorRecoversPanic(t *testing.T) {
	tools := map[string]tool.Tool{
		"boom": &feMockTool{name: "boom", panicMsg: "kaboom"},
	}
	agent := &testFlowAgent{name: "ORACLE", tools: tools}
	exec := NewParallelFunctionExecutor(FunctionExecutorConfig{})
	rc := newExecutorRunContext(t)

	var events []core.Event
	emit := func(ev core.Event) error { events = append(events, ev); return nil }

	exec.Execute(rc, agent, tools, []core.FunctionCall{{ID: "1", Name: "boom", Arguments: "{}"}}, emit)

	require.Len(t, events, 1)
	responses := events[0].GetFunctionResponses()
	require.Len(t, responses, 1)
	assert.Contains(t, responses[0].Error, "panic recovered")
}

func TestFunctionExecutorUnknownTool(t *testing.T) {
	agent := &testFlowAgent{name: "ORACLE", tools: map[string]tool.Tool{}}
	exec := NewParallelFunctionExecutor(FunctionExecutorConfig{})
	rc := newExecutorRunContext(t)

	var events []core.Event
	emit := func(ev core.Event) error { events = append(events, ev); return nil }

	exec.Execute(rc, agent, map[string]tool.Tool{}, []core.FunctionCall{{ID: "1", Name: "ghost", Arguments: "{}"}}, emit)

	require.Len(t, events, 1)
	assert.Contains(t, events[0].GetFunctionResponses()[0].Error, "not found")
}

func TestExecuteToolBadArguments(t *testing.T) {
	tools := map[string]tool.Tool{"one": &feMockTool{name: "one", result: 1}}
	rc := newExecutorRunContext(t)
	tc := core.NewToolContext(rc, "fc-1")

	_, err := executeTool(tools, tc, "one", "{not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
