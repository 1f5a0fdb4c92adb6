package agent

import (
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// Intent is the classified purpose of a student message.
type Intent string

const (
	IntentGreeting  Intent = "greeting"
	IntentPractice  Intent = "practice"
	IntentChallenge Intent = "challenge"
	IntentSchedule  Intent = "schedule"
	IntentDistress  Intent = "distress"
	IntentGratitude Intent = "gratitude"
	IntentGoodbye   Intent = "goodbye"
	IntentDefault   Intent = "default"
)

// Tutor names used for routing and the active_agent state key.
const (
	NameVeda   = "VEDA"
	NameOracle = "ORACLE"
	NameSpark  = "SPARK"
	NameAtlas  = "ATLAS"
	NamePulse  = "PULSE"
	NameRouter = "ROUTER"
)

// Router is the rule-based front door of LOKAAH. It classifies each student
// message and dispatches to the matching tutor. Classification is priority
// ordered: slash commands first, then distress (always above topical
// intents), challenge, practice, schedule, greeting, and finally the default
// route (VEDA).
//
// Two behaviors are handled by the router itself rather than a tutor:
// gratitude gets a warm reply without closing the session, and an explicit
// goodbye closes the session.
type Router struct {
	BaseAgent
	routes map[Intent]string
}

// NewRouter builds the router over the tutor roster. Tutors become
// sub-agents so FindAgent resolves them during dispatch.
func NewRouter(tutors ...core.Agent) (*Router, error) {
	r := &Router{
		BaseAgent: NewBaseAgent(NameRouter),
		routes: map[Intent]string{
			IntentGreeting:  NameVeda,
			IntentDefault:   NameVeda,
			IntentPractice:  NameOracle,
			IntentChallenge: NameSpark,
			IntentSchedule:  NameAtlas,
			IntentDistress:  NamePulse,
		},
	}
	r.SetDescription("Routes student messages to the right tutor")

	if err := r.SetSubAgents(tutors...); err != nil {
		return nil, err
	}

	return r, nil
}

// Keyword tables for intent classification. Matching is case-insensitive
// substring containment over the trimmed message.
var (
	distressKeywords = []string{
		"stressed", "stress", "scared", "afraid", "anxious", "anxiety",
		"give up", "giving up", "hopeless", "panic", "can't do this",
		"cannot do this", "want to cry", "depressed", "hate maths", "hate math",
	}
	challengeKeywords = []string{"challenge", "harder", "tough one", "difficult one"}
	practiceKeywords  = []string{
		"quiz me", "give me a question", "practice", "test me",
		"another question", "next question", "hint", "worksheet", "my answer",
	}
	scheduleKeywords = []string{"schedule", "study plan", "revision", "timetable", "plan my"}
	greetingKeywords = []string{"hello", "hi", "hey", "namaste", "good morning", "good afternoon", "good evening"}
	gratitudeWords   = []string{"thank", "thanks", "thx", "dhanyavad"}
	goodbyeWords     = []string{"bye", "goodbye", "see you", "good night"}
)

// commandRoutes maps slash commands to intents. Commands outrank every
// keyword rule.
var commandRoutes = map[string]Intent{
	"/test":      IntentPractice,
	"/practice":  IntentPractice,
	"/quiz":      IntentPractice,
	"/challenge": IntentChallenge,
	"/schedule":  IntentSchedule,
	"/plan":      IntentSchedule,
	"/exit":      IntentGoodbye,
	"/quit":      IntentGoodbye,
	"/bye":       IntentGoodbye,
}

// Classify maps a raw student message to an Intent using the priority-ordered
// rule table.
func Classify(text string) Intent {
	msg := strings.ToLower(strings.TrimSpace(text))
	if msg == "" {
		return IntentDefault
	}

	if strings.HasPrefix(msg, "/") {
		cmd := msg
		if i := strings.IndexByte(msg, ' '); i > 0 {
			cmd = msg[:i]
		}
		if intent, ok := commandRoutes[cmd]; ok {
			return intent
		}
		return IntentDefault
	}

	for _, kw := range distressKeywords {
		if strings.Contains(msg, kw) {
			return IntentDistress
		}
	}

	for _, kw := range goodbyeWords {
		if containsWord(msg, kw) {
			return IntentGoodbye
		}
	}

	for _, kw := range gratitudeWords {
		if strings.Contains(msg, kw) {
			return IntentGratitude
		}
	}

	for _, kw := range challengeKeywords {
		if strings.Contains(msg, kw) {
			return IntentChallenge
		}
	}

	for _, kw := range practiceKeywords {
		if strings.Contains(msg, kw) {
			return IntentPractice
		}
	}

	for _, kw := range scheduleKeywords {
		if strings.Contains(msg, kw) {
			return IntentSchedule
		}
	}

	for _, kw := range greetingKeywords {
		if containsWord(msg, kw) {
			return IntentGreeting
		}
	}

	return IntentDefault
}

// containsWord reports whether phrase occurs in msg on word boundaries, so
// "hi" does not match "this" and "bye" does not match "maybe".
func containsWord(msg, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(msg[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		leftOK := start == 0 || !isWordChar(msg[start-1])
		rightOK := end == len(msg) || !isWordChar(msg[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

// Run implements core.Agent. It classifies the user message, resolves the
// target tutor and delegates with the shared run context. Sticky routing: a
// message with no recognizable intent while a question is open goes back to
// the tutor that asked it (the student is probably answering).
func (r *Router) Run(runCtx *core.RunContext) error {
	text := runCtx.UserText()
	intent := Classify(text)

	switch intent {
	case IntentGoodbye:
		runCtx.SetState(core.StateKeyClosed, true)
		runCtx.LogInfo("router.route", "intent", string(intent), "agent", NameRouter)
		return runCtx.EmitText("Bye! Keep practicing - I will be here when you return.")

	case IntentGratitude:
		// Warm reply, session stays open.
		runCtx.LogInfo("router.route", "intent", string(intent), "agent", NameRouter)
		return runCtx.EmitText("You're most welcome! Want to try another question or a new topic?")
	}

	target := r.routes[intent]

	if intent == IntentDefault {
		if name, ok := r.stickyTarget(runCtx); ok {
			target = name
		}
	}

	tutor := r.FindAgent(target)
	if tutor == nil {
		runCtx.LogError("router.target.missing", "intent", string(intent), "agent", target)
		return runCtx.EmitText("I could not find a tutor for that just now. Try /test for practice questions.")
	}

	runCtx.LogInfo("router.route", "intent", string(intent), "agent", target, "input_len", len(text))
	runCtx.SetState(core.StateKeyActiveAgent, target)

	// Events emitted during delegation carry the tutor's identity.
	runCtx.Agent = core.AgentInfo{Name: target, Type: "tutor"}

	return tutor.Run(runCtx)
}

// stickyTarget returns the tutor holding an open question, if any. Only
// ORACLE and SPARK keep questions open.
func (r *Router) stickyTarget(runCtx *core.RunContext) (string, bool) {
	if q, ok := runCtx.GetState(core.StateKeyOpenQuestion); !ok || q == nil {
		return "", false
	}

	v, ok := runCtx.GetState(core.StateKeyActiveAgent)
	if !ok {
		return "", false
	}
	name, _ := v.(string)
	if name == NameOracle || name == NameSpark {
		return name, true
	}
	return "", false
}
