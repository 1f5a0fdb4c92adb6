package agent

import (
	"fmt"
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/oracle"
)

// Atlas is the study-scheduling tutor. It builds a short revision plan over
// the student's weak topics: topics recorded in memory by earlier sessions
// come first, topics named in the message next, and a default rotation fills
// the rest. The plan itself runs as a SequentialAgent so each day's step is
// its own event.
type Atlas struct {
	BaseAgent
	registry *oracle.Registry
}

// planDays is the length of the revision plan.
const planDays = 3

// NewAtlas constructs the ATLAS tutor. The registry supplies the topic
// universe for plan steps.
func NewAtlas(registry *oracle.Registry) *Atlas {
	a := &Atlas{
		BaseAgent: NewBaseAgent(NameAtlas),
		registry:  registry,
	}
	a.SetDescription("Builds short study schedules over weak topics")
	return a
}

// Run implements core.Agent.
func (a *Atlas) Run(runCtx *core.RunContext) error {
	topics := a.pickTopics(runCtx)

	steps := make([]core.Agent, 0, len(topics))
	for day, topic := range topics {
		steps = append(steps, &planStep{
			BaseAgent: NewBaseAgent(fmt.Sprintf("%s-day%d", NameAtlas, day+1)),
			day:       day + 1,
			topic:     topic,
		})
	}

	if err := reply(runCtx, fmt.Sprintf(
		"Here is your %d-day revision plan. Tick off each day as you finish it:", len(steps))); err != nil {
		return err
	}

	plan := NewSequentialAgent(NameAtlas+"-plan", steps...)
	if err := plan.Run(runCtx); err != nil {
		return err
	}

	if err := runCtx.StoreMemory(
		"study plan created over topics: "+strings.Join(topics, ", "),
		map[string]any{"kind": "study_plan", "topics": strings.Join(topics, ",")},
	); err != nil {
		runCtx.LogWarn("atlas.memory.store.error", "error", err.Error())
	}

	return reply(runCtx, "After each day, say /test <topic> and I will check how the practice went. All the best!")
}

// pickTopics chooses planDays topics: remembered weak topics first, topics
// named in the message next, then a default rotation.
func (a *Atlas) pickTopics(runCtx *core.RunContext) []string {
	picked := make([]string, 0, planDays)
	seen := map[string]bool{}

	add := func(topic string) {
		if topic == "" || seen[topic] || len(picked) >= planDays {
			return
		}
		seen[topic] = true
		picked = append(picked, topic)
	}

	// Weak topics recorded by earlier practice sessions.
	if results, err := runCtx.SearchMemory("weak", planDays); err == nil {
		for _, res := range results {
			if topic, ok := res.Metadata["topic"].(string); ok {
				add(topic)
			}
		}
	}

	msg := strings.ToLower(runCtx.UserText())
	for _, topic := range a.registry.Topics() {
		if strings.Contains(msg, topic) {
			add(topic)
		}
	}

	for _, topic := range []string{"fractions", "percentages", "algebra", "geometry"} {
		add(topic)
	}

	return picked
}

// planStep emits one day of the study plan.
type planStep struct {
	BaseAgent
	day   int
	topic string
}

func (p *planStep) Run(runCtx *core.RunContext) error {
	return reply(runCtx, fmt.Sprintf(
		"Day %d - %s: revise the notes for 20 minutes, then solve 5 practice questions (/test %s).",
		p.day, p.topic, p.topic))
}
