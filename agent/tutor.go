package agent

import (
	"encoding/json"
	"fmt"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// Shared plumbing for the rule-based tutors. Tutors invoke tools directly
// (no model in between) but still speak the same event protocol as the flow
// layer: a function call event, a function response event carrying the tool's
// accumulated actions, then a final assistant text. The engine persists each
// non-partial event and signals resume before the tutor continues.

// invokeTool runs a tool end to end through the event pipeline and returns
// the tool result. Tool errors come back as the second return value so the
// tutor can phrase a friendly reply; emission failures abort the run.
func invokeTool(runCtx *core.RunContext, t tool.Tool, args map[string]any) (any, error, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal args for %s: %w", t.Name(), err)
	}

	fcID := core.NewID()

	callEv := core.NewEvent(runCtx.RunID, runCtx.Agent.Name)
	callEv.Content = &core.Content{
		Role: "assistant",
		Parts: []core.Part{core.FunctionCallPart{
			FunctionCall: core.FunctionCall{ID: fcID, Name: t.Name(), Arguments: string(raw)},
		}},
	}
	if err := emitAndSync(runCtx, callEv); err != nil {
		return nil, nil, err
	}

	toolCtx := core.NewToolContext(runCtx, fcID)
	result, callErr := t.Call(toolCtx, args)

	respEv := core.NewFunctionResponseEvent(runCtx.Agent.Name, fcID, t.Name(), result, callErr)
	respEv.RunID = runCtx.RunID
	toolCtx.InternalApplyActions(&respEv)
	if err := emitAndSync(runCtx, respEv); err != nil {
		return nil, nil, err
	}

	return result, callErr, nil
}

// emitAndSync emits an event and, for non-partial events, waits for the
// engine's resume signal so session history stays ordered.
func emitAndSync(runCtx *core.RunContext, ev core.Event) error {
	if err := runCtx.EmitEvent(ev); err != nil {
		return err
	}
	if !ev.IsPartial() {
		return runCtx.WaitForResume()
	}
	return nil
}

// reply emits the tutor's final assistant text for this turn.
func reply(runCtx *core.RunContext, text string) error {
	ev := core.NewMessageEvent(runCtx.Agent.Name, text)
	ev.RunID = runCtx.RunID
	complete := true
	ev.TurnComplete = &complete
	return emitAndSync(runCtx, ev)
}

// resultMap coerces a tool result into its map form. Tools in this package
// return map[string]any payloads.
func resultMap(result any) map[string]any {
	if m, ok := result.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// resultInt reads an integer field out of a tool result map regardless of
// whether it survived a JSON round trip.
func resultInt(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func resultString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func resultBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
