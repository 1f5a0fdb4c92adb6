package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roand-7/Lokaah-sub001/artifact"
	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/logging"
	"github.com/Roand-7/Lokaah-sub001/memory"
	"github.com/Roand-7/Lokaah-sub001/oracle"
	"github.com/Roand-7/Lokaah-sub001/session"
)

// tutorHarness stands in for the engine in agent tests: it owns the stores
// and run context, and after each turn applies emitted state deltas to the
// session the way the engine would.
type tutorHarness struct {
	store    *session.InMemoryStore
	memory   *memory.InMemoryStore
	artifact *artifact.InMemoryStore
	emit     chan core.Event
	runCtx   *core.RunContext
}

func newTutorHarness(t *testing.T) *tutorHarness {
	t.Helper()

	h := &tutorHarness{
		store:    session.NewInMemoryStore(),
		memory:   memory.NewInMemoryStore(),
		artifact: artifact.NewInMemoryStore(),
		emit:     make(chan core.Event, 200),
	}

	sess, err := h.store.Create("sess")
	require.NoError(t, err)

	h.runCtx = core.NewRunContext(
		context.Background(),
		"sess", "run",
		core.AgentInfo{Name: NameRouter, Type: "router"},
		core.NewTextContent("user", ""),
		0,
		h.emit,
		nil, // no resume channel: WaitForResume is a no-op
		sess,
		h.store,
		h.artifact,
		h.memory,
		logging.NoOpLogger{},
	)

	return h
}

// turn runs one user message through the agent and returns the emitted
// events, with state deltas applied to the session store first.
func (h *tutorHarness) turn(t *testing.T, a core.Agent, text string) []core.Event {
	t.Helper()

	h.runCtx.UserContent = core.NewTextContent("user", text)
	require.NoError(t, h.store.AppendEvent("sess", core.NewUserMessageEvent("run", text)))
	require.NoError(t, a.Run(h.runCtx))

	var events []core.Event
	for {
		select {
		case ev := <-h.emit:
			if len(ev.Actions.StateDelta) > 0 {
				require.NoError(t, h.store.ApplyDelta("sess", ev.Actions.StateDelta))
			}
			require.NoError(t, h.store.AppendEvent("sess", ev))
			events = append(events, ev)
		default:
			require.NoError(t, h.runCtx.RefreshSession())
			return events
		}
	}
}

// lastText returns the text of the last event carrying content.
func lastText(events []core.Event) string {
	for i := len(events) - 1; i >= 0; i-- {
		if text := events[i].Text(); text != "" {
			return text
		}
	}
	return ""
}

func (h *tutorHarness) state(t *testing.T, key string) any {
	t.Helper()
	v, _ := h.runCtx.GetState(key)
	return v
}

// newTestRoster builds the full tutor lineup over a seeded oracle engine.
func newTestRoster(t *testing.T) *Router {
	t.Helper()

	engine := oracle.NewEngine(func(o *oracle.EngineOptions) { o.Seed = 7 })
	router, err := NewRouter(
		NewVeda(),
		NewOracleTutor(engine),
		NewSpark(engine),
		NewAtlas(engine.Registry()),
		NewPulse(),
	)
	require.NoError(t, err)
	return router
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"Hello there", IntentGreeting},
		{"namaste", IntentGreeting},
		{"good morning!", IntentGreeting},
		{"/test", IntentPractice},
		{"/test fractions", IntentPractice},
		{"/practice", IntentPractice},
		{"quiz me on decimals", IntentPractice},
		{"give me a question", IntentPractice},
		{"/challenge", IntentChallenge},
		{"challenge me", IntentChallenge},
		{"something harder please", IntentChallenge},
		{"/schedule", IntentSchedule},
		{"make me a study plan", IntentSchedule},
		{"revision for exams", IntentSchedule},
		{"i am so stressed about the exam", IntentDistress},
		{"I want to give up on this practice", IntentDistress}, // distress outranks practice
		{"i hate maths", IntentDistress},
		{"thank you!", IntentGratitude},
		{"thanks a lot", IntentGratitude},
		{"bye", IntentGoodbye},
		{"/exit", IntentGoodbye},
		{"good night", IntentGoodbye},
		{"maybe", IntentDefault},   // "bye" must match on word boundaries
		{"this is fun", IntentDefault}, // "hi" must not match inside "this"
		{"/unknowncommand", IntentDefault},
		{"", IntentDefault},
		{"7/12", IntentDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.text), "text: %q", tt.text)
	}
}

func TestRouterGreetingGoesToVeda(t *testing.T) {
	h := newTutorHarness(t)
	router := newTestRoster(t)

	events := h.turn(t, router, "Hello")
	assert.Contains(t, lastText(events), "Namaste! I am VEDA")
	assert.Equal(t, NameVeda, h.state(t, core.StateKeyActiveAgent))
}

func TestRouterTestCommandGoesToOracle(t *testing.T) {
	h := newTutorHarness(t)
	router := newTestRoster(t)

	events := h.turn(t, router, "/test fractions")
	assert.Contains(t, lastText(events), "Here is your question")
	assert.Equal(t, NameOracle, h.state(t, core.StateKeyActiveAgent))
	assert.NotNil(t, h.state(t, core.StateKeyOpenQuestion))
}

func TestRouterDistressOutranksPractice(t *testing.T) {
	h := newTutorHarness(t)
	router := newTestRoster(t)

	h.turn(t, router, "i am scared of this practice test")
	assert.Equal(t, NamePulse, h.state(t, core.StateKeyActiveAgent))
}

func TestRouterGratitudeKeepsSessionOpen(t *testing.T) {
	h := newTutorHarness(t)
	router := newTestRoster(t)

	events := h.turn(t, router, "thank you")
	assert.Contains(t, lastText(events), "welcome")
	assert.Nil(t, h.state(t, core.StateKeyClosed))
}

func TestRouterGoodbyeClosesSession(t *testing.T) {
	h := newTutorHarness(t)
	router := newTestRoster(t)

	events := h.turn(t, router, "bye")
	assert.Contains(t, lastText(events), "Bye")
	assert.Equal(t, true, h.state(t, core.StateKeyClosed))
}

func TestRouterStickyRoutingForAnswers(t *testing.T) {
	h := newTutorHarness(t)
	router := newTestRoster(t)

	h.turn(t, router, "/test fractions")
	require.NotNil(t, h.state(t, core.StateKeyOpenQuestion))

	// A bare answer has no intent keywords; it must go back to ORACLE.
	events := h.turn(t, router, "999999")
	assert.Equal(t, NameOracle, h.state(t, core.StateKeyActiveAgent))
	assert.Contains(t, lastText(events), "Not quite")
}

func TestRouterUnknownDefaultsToVeda(t *testing.T) {
	h := newTutorHarness(t)
	router := newTestRoster(t)

	h.turn(t, router, "what is the meaning of life")
	assert.Equal(t, NameVeda, h.state(t, core.StateKeyActiveAgent))
}
