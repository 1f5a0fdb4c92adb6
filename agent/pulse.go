package agent

import (
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// Pulse is the emotional-support tutor. Distress messages route here with
// priority over everything else. Pulse acknowledges the feeling, lowers the
// stakes, and for severe distress raises an escalation event so a human
// teacher can step in. Each episode is recorded in memory so ATLAS can plan
// lighter sessions afterwards.
type Pulse struct {
	BaseAgent
}

// NewPulse constructs the PULSE tutor.
func NewPulse() *Pulse {
	p := &Pulse{BaseAgent: NewBaseAgent(NamePulse)}
	p.SetDescription("Listens and supports when maths feels overwhelming")
	return p
}

// severeKeywords mark messages that should reach a human teacher.
var severeKeywords = []string{"give up", "giving up", "hopeless", "depressed", "want to cry"}

// Run implements core.Agent.
func (p *Pulse) Run(runCtx *core.RunContext) error {
	text := runCtx.UserText()
	msg := strings.ToLower(text)

	severe := false
	for _, kw := range severeKeywords {
		if strings.Contains(msg, kw) {
			severe = true
			break
		}
	}

	if err := runCtx.StoreMemory("student expressed distress: "+text,
		map[string]any{"kind": "distress", "severe": severe}); err != nil {
		runCtx.LogWarn("pulse.memory.store.error", "error", err.Error())
	}

	if severe {
		content := core.NewTextContent("assistant",
			"I hear you, and it is okay to feel this way. Maths is hard for everyone some days - "+
				"it says nothing about how capable you are. I am letting your teacher know you could use "+
				"some support. For now, take a deep breath; we can stop here or try one tiny, easy question together.")
		ev := CreateEscalationEvent(runCtx.RunID, p.Name(), &content)
		complete := true
		ev.TurnComplete = &complete
		runCtx.LogInfo("pulse.escalate", "session", runCtx.SessionID)
		return emitAndSync(runCtx, ev)
	}

	return reply(runCtx,
		"That sounds stressful, and it is completely normal to feel that way before an exam. "+
			"Let us make it smaller: one easy question, no marks, no timer. Say 'yes' and I will "+
			"fetch one, or we can just talk about what feels hardest.")
}
