package tool

import (
	"github.com/Roand-7/Lokaah-sub001/core"
)

// progressTool summarizes the student's practice progress from session state
// and history: challenge streak, questions served, hint usage and whether a
// question is awaiting an answer.
type progressTool struct{}

// NewProgressTool constructs the session_progress tool.
func NewProgressTool() Tool { return &progressTool{} }

func (t *progressTool) Name() string { return "session_progress" }

func (t *progressTool) Description() string {
	return "Summarize the student's progress this session: streak, questions attempted and hint usage."
}

func (t *progressTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *progressTool) Call(tc *core.ToolContext, args map[string]any) (any, error) {
	_, hasOpen := openQuestion(tc)

	turns := 0
	for _, ev := range tc.GetSessionHistory() {
		if ev.Author == "user" {
			turns++
		}
	}

	return map[string]any{
		"streak":           intState(tc, core.StateKeyStreak),
		"questions_served": len(seenHashes(tc)),
		"hints_shown":      intState(tc, core.StateKeyHintsShown),
		"question_open":    hasOpen,
		"user_turns":       turns,
	}, nil
}

// endSessionTool lets a tutor close the session when the student says
// goodbye.
type endSessionTool struct{}

// NewEndSessionTool constructs the end_session tool.
func NewEndSessionTool() Tool { return &endSessionTool{} }

func (t *endSessionTool) Name() string { return "end_session" }

func (t *endSessionTool) Description() string {
	return "Close the tutoring session. Only call this when the student explicitly says goodbye."
}

func (t *endSessionTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *endSessionTool) Call(tc *core.ToolContext, args map[string]any) (any, error) {
	tc.EndSession()
	return map[string]any{"closed": true}, nil
}
