package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/oracle"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// OracleTutor is the practice-question tutor. It serves questions from the
// oracle engine, checks submitted answers, walks the three-level hint ladder
// and saves worksheets as artifacts. The open question and served-question
// hashes live in session state, so practice survives restarts and hand-offs.
type OracleTutor struct {
	BaseAgent
	engine    *oracle.Engine
	generate  tool.Tool
	check     tool.Tool
	hint      tool.Tool
	worksheet tool.Tool
	progress  tool.Tool
}

// NewOracleTutor constructs the ORACLE tutor over an oracle engine.
func NewOracleTutor(engine *oracle.Engine) *OracleTutor {
	o := &OracleTutor{
		BaseAgent: NewBaseAgent(NameOracle),
		engine:    engine,
		generate:  tool.NewGenerateQuestionTool(engine),
		check:     tool.NewCheckAnswerTool(),
		hint:      tool.NewGetHintTool(),
		worksheet: tool.NewSaveWorksheetTool(engine),
		progress:  tool.NewProgressTool(),
	}
	o.SetDescription("Serves practice questions, checks answers and gives hints")
	return o
}

// Run implements core.Agent.
func (o *OracleTutor) Run(runCtx *core.RunContext) error {
	text := runCtx.UserText()
	msg := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.Contains(msg, "hint"):
		return o.serveHint(runCtx)

	case strings.Contains(msg, "worksheet"):
		return o.buildWorksheet(runCtx, msg)

	case strings.Contains(msg, "progress") || strings.Contains(msg, "how am i doing"):
		return o.reportProgress(runCtx)

	case o.hasOpenQuestion(runCtx) && !wantsNewQuestion(msg):
		return o.checkAnswer(runCtx, text)

	default:
		return o.serveQuestion(runCtx, msg)
	}
}

func (o *OracleTutor) hasOpenQuestion(runCtx *core.RunContext) bool {
	v, ok := runCtx.GetState(core.StateKeyOpenQuestion)
	return ok && v != nil
}

// wantsNewQuestion distinguishes "give me another one" from an answer
// submission while a question is open.
func wantsNewQuestion(msg string) bool {
	if strings.HasPrefix(msg, "/") {
		return true
	}
	for _, kw := range []string{"another", "next", "new question", "skip", "quiz", "practice", "question"} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// extractTopic finds a registry topic mentioned in the message. "/test
// fractions" and "quiz me on fractions" both resolve to "fractions".
func (o *OracleTutor) extractTopic(msg string) string {
	for _, topic := range o.engine.Registry().Topics() {
		if strings.Contains(msg, topic) || strings.Contains(msg, strings.TrimSuffix(topic, "s")) {
			return topic
		}
	}
	return ""
}

func extractDifficulty(msg string) string {
	for _, d := range []string{"easy", "medium", "hard"} {
		if strings.Contains(msg, d) {
			return d
		}
	}
	return ""
}

func (o *OracleTutor) serveQuestion(runCtx *core.RunContext, msg string) error {
	args := map[string]any{}
	if topic := o.extractTopic(msg); topic != "" {
		args["topic"] = topic
	}
	if diff := extractDifficulty(msg); diff != "" {
		args["difficulty"] = diff
	}

	result, callErr, err := invokeTool(runCtx, o.generate, args)
	if err != nil {
		return err
	}
	if callErr != nil {
		return reply(runCtx, "I could not find a question for that topic. Try one of: "+
			strings.Join(o.engine.Registry().Topics(), ", ")+".")
	}

	m := resultMap(result)
	return reply(runCtx, fmt.Sprintf(
		"Here is your question (%s, %s, %d marks):\n\n%s\n\nSend me your answer, or say 'hint' if you are stuck.",
		resultString(m, "topic"), resultString(m, "difficulty"), resultInt(m, "marks"), resultString(m, "question"),
	))
}

func (o *OracleTutor) checkAnswer(runCtx *core.RunContext, answer string) error {
	result, callErr, err := invokeTool(runCtx, o.check, map[string]any{"answer": answer})
	if err != nil {
		return err
	}
	if callErr != nil {
		return reply(runCtx, "There is no question open right now. Say /test to get one.")
	}

	m := resultMap(result)
	if resultBool(m, "correct") {
		var steps string
		if raw, ok := m["steps"].([]string); ok {
			steps = strings.Join(raw, "\n")
		} else if raw, ok := m["steps"].([]any); ok {
			parts := make([]string, 0, len(raw))
			for _, s := range raw {
				if str, ok := s.(string); ok {
					parts = append(parts, str)
				}
			}
			steps = strings.Join(parts, "\n")
		}

		text := fmt.Sprintf("Correct! The answer is %s.", resultString(m, "expected"))
		if steps != "" {
			text += "\n\nWorking:\n" + steps
		}
		text += "\n\nSay 'another question' to keep going."
		return reply(runCtx, text)
	}

	remaining := resultInt(m, "hints_available")
	if remaining > 0 {
		return reply(runCtx, fmt.Sprintf(
			"Not quite - have another go. You have %d hint(s) left, just say 'hint'.", remaining))
	}
	return reply(runCtx, "Not quite, and the hints are used up. Take your time and try once more.")
}

func (o *OracleTutor) serveHint(runCtx *core.RunContext) error {
	result, callErr, err := invokeTool(runCtx, o.hint, map[string]any{})
	if err != nil {
		return err
	}
	if callErr != nil {
		var te *tool.ToolError
		if errors.As(callErr, &te) && te.Code == "HINTS_EXHAUSTED" {
			return reply(runCtx, "You have seen all three hints - give it your best try!")
		}
		return reply(runCtx, "There is no question open right now. Say /test to get one.")
	}

	m := resultMap(result)
	return reply(runCtx, fmt.Sprintf("Hint %d/%d: %s",
		resultInt(m, "level"), oracle.HintLevels, resultString(m, "hint")))
}

func (o *OracleTutor) buildWorksheet(runCtx *core.RunContext, msg string) error {
	topic := o.extractTopic(msg)
	if topic == "" {
		return reply(runCtx, "Which topic should the worksheet cover? For example: 'worksheet on fractions'.")
	}

	args := map[string]any{"topic": topic}
	if diff := extractDifficulty(msg); diff != "" {
		args["difficulty"] = diff
	}

	result, callErr, err := invokeTool(runCtx, o.worksheet, args)
	if err != nil {
		return err
	}
	if callErr != nil {
		return reply(runCtx, "I could not build that worksheet: "+callErr.Error())
	}

	m := resultMap(result)
	return reply(runCtx, fmt.Sprintf(
		"Done! I saved a %d-question worksheet on %s (artifact %s). The answer key is at the bottom.",
		resultInt(m, "questions"), resultString(m, "topic"), resultString(m, "artifact_id")))
}

func (o *OracleTutor) reportProgress(runCtx *core.RunContext) error {
	result, callErr, err := invokeTool(runCtx, o.progress, map[string]any{})
	if err != nil {
		return err
	}
	if callErr != nil {
		return reply(runCtx, "I could not read your progress just now.")
	}

	m := resultMap(result)
	return reply(runCtx, fmt.Sprintf(
		"So far this session: %d question(s) served, challenge streak %d, %d hint level(s) used on the current question.",
		resultInt(m, "questions_served"), resultInt(m, "streak"), resultInt(m, "hints_shown")))
}
