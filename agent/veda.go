package agent

import (
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/model"
	"github.com/Roand-7/Lokaah-sub001/oracle"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// Veda is the greeting and teaching tutor, and the default route. It welcomes
// the student, explains topics on request and points at the other tutors'
// commands. When a model is configured, open-ended questions go through an
// embedded ModelAgent so they get the full flow treatment (instruction
// resolution, conversation window, tool calls); otherwise Veda falls back to
// its built-in topic notes.
type Veda struct {
	BaseAgent
	explainer *ModelAgent
}

// VedaOptions configures the Veda tutor.
type VedaOptions struct {
	// Model, when set, answers open-ended teaching questions. Nil keeps
	// Veda fully deterministic.
	Model model.Model
	// Oracle, when set together with Model, lets the model serve a practice
	// question mid-explanation via the generate_question tool.
	Oracle *oracle.Engine
}

const vedaInstruction = "You are VEDA, a friendly maths tutor for school students in India. " +
	"Explain concepts step by step in simple language with one worked example."

// NewVeda constructs the VEDA tutor.
func NewVeda(optFns ...func(o *VedaOptions)) *Veda {
	opts := VedaOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	v := &Veda{BaseAgent: NewBaseAgent(NameVeda)}
	v.SetDescription("Greets students, explains maths topics and guides them to the right tutor")

	if opts.Model != nil {
		v.explainer = NewModelAgent(NameVeda, opts.Model, func(o *ModelAgentOptions) {
			o.Instruction = NewInstructionFromText(vedaInstruction)
			// The chat surface prints whole replies; per-token partials
			// would only be dropped.
			o.EnableStreaming = false
		})
		if opts.Oracle != nil {
			v.explainer.RegisterTool(tool.NewGenerateQuestionTool(opts.Oracle))
		}
	}

	return v
}

const vedaGreeting = "Namaste! I am VEDA, your maths guide. Ask me to explain any topic, " +
	"or try /test for practice questions, /challenge for a hard one, and /schedule for a study plan."

// topicNotes are Veda's built-in explanations, used when no model is wired.
var topicNotes = map[string]string{
	"fractions": "A fraction shows parts of a whole: in 3/4 the bottom number (denominator) " +
		"says how many equal parts the whole is cut into, and the top (numerator) says how many you take. " +
		"To add fractions, first make the denominators equal.",
	"percentages": "Per cent means per hundred. 25% is 25 out of every 100, the same as 1/4. " +
		"To find x% of a number, multiply the number by x and divide by 100.",
	"algebra": "Algebra uses letters for unknown numbers. Solving an equation means undoing " +
		"what was done to the letter: if 2x + 3 = 11, subtract 3 then divide by 2 to get x = 4.",
	"geometry": "Geometry measures shapes. Area is the space inside (rectangle: length x breadth), " +
		"perimeter is the distance around, and angles in a triangle always add to 180 degrees.",
	"decimals": "Decimals are fractions written with a point: 0.5 is 5/10. Line up the points " +
		"before adding or subtracting, and remember each place to the right is ten times smaller.",
	"ratio": "A ratio compares quantities in the same units: 2:3 means for every 2 of the first " +
		"there are 3 of the second. Simplify ratios like fractions, by dividing both sides by their HCF.",
}

// Run implements core.Agent.
func (v *Veda) Run(runCtx *core.RunContext) error {
	text := runCtx.UserText()

	if Classify(text) == IntentGreeting || strings.TrimSpace(text) == "" {
		return reply(runCtx, vedaGreeting)
	}

	msg := strings.ToLower(text)
	for topic, note := range topicNotes {
		if strings.Contains(msg, topic) || strings.Contains(msg, strings.TrimSuffix(topic, "s")) {
			runCtx.LogDebug("veda.topic.matched", "topic", topic)
			return reply(runCtx, note+"\n\nWant to practice? Say /test "+topic+".")
		}
	}

	if v.explainer != nil {
		return v.explainer.Run(runCtx)
	}

	return reply(runCtx, "I can explain fractions, decimals, percentages, ratio, algebra and geometry. "+
		"Which one shall we look at? Or say /test to practice.")
}
