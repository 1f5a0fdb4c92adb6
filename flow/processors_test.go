package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/model"
)

func TestInstructionsProcessorRendersTemplate(t *testing.T) {
	agent := &templatedAgent{instructions: "You are {{.tutor_name}}, streak {{.challenge_streak}}."}
	runCtx := newFlowRunContext(t, "hi")
	runCtx.Session.SetState("tutor_name", "SPARK")
	runCtx.Session.SetState(core.StateKeyStreak, 4)

	req := &model.Request{}
	require.NoError(t, NewInstructionsProcessor().ProcessRequest(runCtx, req, agent))
	assert.Equal(t, "You are SPARK, streak 4.", req.Instructions)
}

func TestContentsProcessorWindowsHistory(t *testing.T) {
	agent := &templatedAgent{instructions: "sys", window: 2}
	runCtx := newFlowRunContext(t, "latest")
	for i := 0; i < 5; i++ {
		runCtx.Session.AddEvent(core.NewUserMessageEvent("run", "older"))
	}
	runCtx.Session.AddEvent(core.NewUserMessageEvent("run", "newest"))

	req := &model.Request{Instructions: "sys"}
	require.NoError(t, NewContentsProcessor().ProcessRequest(runCtx, req, agent))

	// system prompt + trailing window of 2
	require.Len(t, req.Contents, 3)
	assert.Equal(t, "system", req.Contents[0].Role)
	assert.Equal(t, "newest", req.Contents[2].FirstText())
}

func TestContentsProcessorSkipsPartials(t *testing.T) {
	agent := &templatedAgent{instructions: "sys", window: 10}
	runCtx := newFlowRunContext(t, "hi")

	partial := core.NewMessageEvent("VEDA", "Nam")
	p := true
	partial.Partial = &p
	runCtx.Session.AddEvent(partial)
	runCtx.Session.AddEvent(core.NewMessageEvent("VEDA", "Namaste!"))

	req := &model.Request{Instructions: "sys"}
	require.NoError(t, NewContentsProcessor().ProcessRequest(runCtx, req, agent))

	for _, c := range req.Contents[1:] {
		assert.NotEqual(t, "Nam", c.FirstText())
	}
}

func TestTransferToolInjector(t *testing.T) {
	child := &testFlowAgent{name: "ORACLE"}
	agent := &testFlowAgent{name: "ROUTER", transfer: true, subAgents: []FlowAgent{child}}
	runCtx := newFlowRunContext(t, "hi")

	req := &model.Request{}
	inj := NewTransferToolInjector()
	require.NoError(t, inj.ProcessRequest(runCtx, req, agent))

	found := 0
	for _, td := range req.Tools {
		if td.Function.Name == "transfer_to_agent" {
			found++
			assert.Contains(t, td.Function.Description, "ORACLE")
		}
	}
	assert.Equal(t, 1, found)

	// idempotent on repeat
	require.NoError(t, inj.ProcessRequest(runCtx, req, agent))
	count := 0
	for _, td := range req.Tools {
		if td.Function.Name == "transfer_to_agent" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestTransferToolInjectorSkipsIsolatedAgent(t *testing.T) {
	agent := &testFlowAgent{name: "VEDA"}
	runCtx := newFlowRunContext(t, "hi")

	req := &model.Request{}
	require.NoError(t, NewTransferToolInjector().ProcessRequest(runCtx, req, agent))
	assert.Empty(t, req.Tools)
}

// templatedAgent lets tests vary instructions and the history window.
type templatedAgent struct {
	testFlowAgent
	instructions string
	window       int
}

func (a *templatedAgent) ResolveInstructions(*core.RunContext) (string, error) {
	return a.instructions, nil
}

func (a *templatedAgent) MaxHistoryMessages() int {
	if a.window > 0 {
		return a.window
	}
	return 20
}
