package agent

import (
	"fmt"
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/oracle"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// Spark is the challenge tutor: hard-difficulty questions only, with a
// consecutive-correct streak tracked in session state. "blitz" serves a burst
// of challenge questions in one turn, driven by a LoopAgent.
type Spark struct {
	BaseAgent
	engine   *oracle.Engine
	generate tool.Tool
	check    tool.Tool
}

// blitzRounds is the number of questions in a lightning round.
const blitzRounds = 3

// NewSpark constructs the SPARK tutor over an oracle engine.
func NewSpark(engine *oracle.Engine) *Spark {
	s := &Spark{
		BaseAgent: NewBaseAgent(NameSpark),
		engine:    engine,
		generate:  tool.NewGenerateQuestionTool(engine),
		check:     tool.NewCheckAnswerTool(),
	}
	s.SetDescription("Challenge mode: hard questions and streak tracking")
	return s
}

// Run implements core.Agent.
func (s *Spark) Run(runCtx *core.RunContext) error {
	msg := strings.ToLower(strings.TrimSpace(runCtx.UserText()))

	switch {
	case strings.Contains(msg, "blitz") || strings.Contains(msg, "rapid"):
		return s.blitz(runCtx, msg)

	case s.hasOpenQuestion(runCtx) && !wantsNewQuestion(msg):
		return s.checkAnswer(runCtx, runCtx.UserText())

	default:
		return s.serveChallenge(runCtx, msg)
	}
}

func (s *Spark) hasOpenQuestion(runCtx *core.RunContext) bool {
	v, ok := runCtx.GetState(core.StateKeyOpenQuestion)
	return ok && v != nil
}

func (s *Spark) serveChallenge(runCtx *core.RunContext, msg string) error {
	args := map[string]any{"difficulty": string(oracle.Hard)}
	for _, topic := range s.engine.Registry().Topics() {
		if strings.Contains(msg, topic) {
			args["topic"] = topic
			break
		}
	}

	result, callErr, err := invokeTool(runCtx, s.generate, args)
	if err != nil {
		return err
	}
	if callErr != nil {
		return reply(runCtx, "No hard questions left on that topic - try another, or plain /challenge.")
	}

	m := resultMap(result)
	streak := stateInt(runCtx, core.StateKeyStreak)
	intro := "Challenge time!"
	if streak > 0 {
		intro = fmt.Sprintf("Streak %d - keep it alive!", streak)
	}

	return reply(runCtx, fmt.Sprintf("%s (%d marks)\n\n%s\n\nNo hints in challenge mode. Send your answer.",
		intro, resultInt(m, "marks"), resultString(m, "question")))
}

func (s *Spark) checkAnswer(runCtx *core.RunContext, answer string) error {
	result, callErr, err := invokeTool(runCtx, s.check, map[string]any{"answer": answer})
	if err != nil {
		return err
	}
	if callErr != nil {
		return reply(runCtx, "No challenge open right now. Say /challenge for one.")
	}

	m := resultMap(result)
	if resultBool(m, "correct") {
		return reply(runCtx, fmt.Sprintf(
			"Blazing! That is %d in a row. Say /challenge for the next one.", resultInt(m, "streak")))
	}

	return reply(runCtx, "Streak over! The right answer was waiting for one more step. "+
		"Say /challenge to start a new streak.")
}

// blitz runs a lightning round: a LoopAgent drives the round agent once per
// question so each question flows through the event pipeline like a normal
// turn.
func (s *Spark) blitz(runCtx *core.RunContext, msg string) error {
	round := &sparkRound{
		BaseAgent: NewBaseAgent(NameSpark + "-round"),
		generate:  s.generate,
	}
	for _, topic := range s.engine.Registry().Topics() {
		if strings.Contains(msg, topic) {
			round.topic = topic
			break
		}
	}

	loop := NewLoopAgent(NameSpark+"-blitz", round,
		WithMaxIters(blitzRounds),
		WithPredicate(func(out string) bool { return strings.Contains(out, "out of questions") }),
	)

	if err := reply(runCtx, fmt.Sprintf("Lightning round: %d hard questions, no hints. Ready?", blitzRounds)); err != nil {
		return err
	}
	if err := loop.Run(runCtx); err != nil {
		return err
	}

	return reply(runCtx, "That is the round! Answer them one by one, latest question first.")
}

// sparkRound serves exactly one hard question per Run. The blitz LoopAgent
// invokes it repeatedly.
type sparkRound struct {
	BaseAgent
	generate tool.Tool
	topic    string
	served   int
}

func (r *sparkRound) Run(runCtx *core.RunContext) error {
	args := map[string]any{"difficulty": string(oracle.Hard)}
	if r.topic != "" {
		args["topic"] = r.topic
	}

	result, callErr, err := invokeTool(runCtx, r.generate, args)
	if err != nil {
		return err
	}
	if callErr != nil {
		return reply(runCtx, "Looks like I am out of questions for this round.")
	}

	r.served++
	m := resultMap(result)
	return reply(runCtx, fmt.Sprintf("Q%d (%d marks): %s",
		r.served, resultInt(m, "marks"), resultString(m, "question")))
}

// stateInt reads an int state value tolerating the float64 form it takes
// after a JSON round trip.
func stateInt(runCtx *core.RunContext, key string) int {
	v, ok := runCtx.GetState(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
