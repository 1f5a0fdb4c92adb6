package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/oracle"
)

// Question practice tools backed by the oracle engine. The open question, the
// hint ladder position and the set of served question hashes all live in
// session state so practice survives engine restarts and tutor hand-offs.

// questionToState converts a question into a JSON-friendly map for session
// state storage.
func questionToState(q oracle.Question) (map[string]any, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// questionFromState reverses questionToState.
func questionFromState(v any) (oracle.Question, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return oracle.Question{}, err
	}
	var q oracle.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return oracle.Question{}, err
	}
	return q, nil
}

// openQuestion loads the session's current question, if any.
func openQuestion(tc *core.ToolContext) (oracle.Question, bool) {
	v, ok := tc.GetState(core.StateKeyOpenQuestion)
	if !ok || v == nil {
		return oracle.Question{}, false
	}
	q, err := questionFromState(v)
	if err != nil {
		return oracle.Question{}, false
	}
	return q, true
}

// seenHashes reconstructs the served-question set from session state. Values
// arrive as []any after a JSON round trip through the session store.
func seenHashes(tc *core.ToolContext) map[string]bool {
	seen := map[string]bool{}
	v, ok := tc.GetState(core.StateKeySeenQuestions)
	if !ok {
		return seen
	}
	switch list := v.(type) {
	case []string:
		for _, h := range list {
			seen[h] = true
		}
	case []any:
		for _, h := range list {
			if s, ok := h.(string); ok {
				seen[s] = true
			}
		}
	}
	return seen
}

func markSeen(tc *core.ToolContext, hash string) {
	seen := seenHashes(tc)
	seen[hash] = true
	list := make([]string, 0, len(seen))
	for h := range seen {
		list = append(list, h)
	}
	tc.SetState(core.StateKeySeenQuestions, list)
}

func intState(tc *core.ToolContext, key string) int {
	v, ok := tc.GetState(key)
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

// NewGenerateQuestionTool creates the generate_question tool. Optional topic,
// difficulty and pattern_id arguments narrow the pattern pool; the engine
// avoids questions already served this session.
func NewGenerateQuestionTool(engine *oracle.Engine) Tool {
	return NewFunctionTool(
		"generate_question",
		"Generate a fresh practice question, optionally filtered by topic, difficulty or a specific pattern id.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic":      map[string]any{"type": "string", "description": "Topic filter, e.g. fractions, percentages"},
				"difficulty": map[string]any{"type": "string", "description": "easy, medium or hard"},
				"pattern_id": map[string]any{"type": "string", "description": "Pin generation to one pattern"},
			},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			topic, _ := args["topic"].(string)
			difficulty, _ := args["difficulty"].(string)
			patternID, _ := args["pattern_id"].(string)

			q, err := engine.Generate(oracle.GenerateRequest{
				Topic:      topic,
				Difficulty: oracle.Difficulty(difficulty),
				PatternID:  patternID,
				Seen:       seenHashes(tc),
			})
			if err != nil {
				return nil, NewToolError("generate_question", err.Error(), "NO_PATTERN")
			}

			state, err := questionToState(q)
			if err != nil {
				return nil, err
			}
			tc.SetState(core.StateKeyOpenQuestion, state)
			tc.SetState(core.StateKeyHintsShown, 0)
			markSeen(tc, q.Hash())

			return map[string]any{
				"question":   q.Text,
				"topic":      q.Topic,
				"difficulty": string(q.Difficulty),
				"marks":      q.Marks,
				"pattern_id": q.PatternID,
			}, nil
		},
	)
}

// NewCheckAnswerTool creates the check_answer tool. A correct answer closes
// the open question, returns the worked solution and bumps the challenge
// streak; a wrong answer keeps the question open, resets the streak and
// records the topic as weak so revision planning can pick it up.
func NewCheckAnswerTool() Tool {
	return NewFunctionTool(
		"check_answer",
		"Check the student's answer to the current practice question.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answer": map[string]any{"type": "string", "description": "The student's submitted answer"},
			},
			"required": []string{"answer"},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			q, ok := openQuestion(tc)
			if !ok {
				return nil, NewToolError("check_answer", "no question is currently open", "NO_OPEN_QUESTION")
			}

			answer, _ := args["answer"].(string)
			verdict := oracle.CheckAnswer(q.Answer, answer)

			result := map[string]any{
				"correct":   verdict.Correct,
				"submitted": verdict.Submitted,
			}

			if verdict.Correct {
				streak := intState(tc, core.StateKeyStreak) + 1
				tc.SetState(core.StateKeyStreak, streak)
				tc.SetState(core.StateKeyOpenQuestion, nil)
				tc.SetState(core.StateKeyHintsShown, 0)

				result["expected"] = q.Answer
				result["steps"] = q.Steps
				result["streak"] = streak
				result["marks"] = q.Marks
				return result, nil
			}

			tc.SetState(core.StateKeyStreak, 0)
			// Record the miss so ATLAS puts this topic first when the
			// student asks for a revision plan. Memory is advisory; a
			// missing store must not fail the answer check.
			_ = tc.StoreMemory(
				fmt.Sprintf("weak topic: %s (missed %s)", q.Topic, q.PatternID),
				map[string]any{"kind": "weak_topic", "topic": q.Topic, "pattern_id": q.PatternID},
			)
			result["hints_available"] = oracle.HintLevels - intState(tc, core.StateKeyHintsShown)
			return result, nil
		},
	)
}

// NewGetHintTool creates the get_hint tool serving the three-level hint
// ladder for the open question.
func NewGetHintTool() Tool {
	return NewFunctionTool(
		"get_hint",
		"Reveal the next hint for the current practice question. Hints progress from a nudge to a near-walkthrough.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			q, ok := openQuestion(tc)
			if !ok {
				return nil, NewToolError("get_hint", "no question is currently open", "NO_OPEN_QUESTION")
			}

			hint, shown, err := oracle.NextHint(q, intState(tc, core.StateKeyHintsShown))
			if err != nil {
				return nil, NewToolError("get_hint", err.Error(), "HINTS_EXHAUSTED")
			}
			tc.SetState(core.StateKeyHintsShown, shown)

			return map[string]any{
				"hint":      hint,
				"level":     shown,
				"remaining": oracle.HintLevels - shown,
			}, nil
		},
	)
}

// NewSaveWorksheetTool creates the save_worksheet tool. It generates a batch
// of questions, renders them as a plain-text worksheet with an answer key and
// stores the result as a session artifact.
func NewSaveWorksheetTool(engine *oracle.Engine) Tool {
	return NewFunctionTool(
		"save_worksheet",
		"Generate a practice worksheet for a topic and save it as a downloadable artifact.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic":      map[string]any{"type": "string", "description": "Worksheet topic"},
				"difficulty": map[string]any{"type": "string", "description": "easy, medium or hard"},
				"count":      map[string]any{"type": "integer", "description": "Number of questions (1-20, default 5)"},
			},
			"required": []string{"topic"},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			topic, _ := args["topic"].(string)
			difficulty, _ := args["difficulty"].(string)

			count := 5
			switch n := args["count"].(type) {
			case int:
				count = n
			case float64:
				count = int(n)
			}
			if count < 1 || count > 20 {
				return nil, NewToolError("save_worksheet", "count must be between 1 and 20", "VALIDATION_ERROR")
			}

			seen := seenHashes(tc)
			var sheet, key strings.Builder
			fmt.Fprintf(&sheet, "Worksheet: %s\n\n", topic)
			key.WriteString("Answer key\n\n")

			for i := 0; i < count; i++ {
				q, err := engine.Generate(oracle.GenerateRequest{
					Topic:      topic,
					Difficulty: oracle.Difficulty(difficulty),
					Seen:       seen,
				})
				if err != nil {
					return nil, NewToolError("save_worksheet", err.Error(), "NO_PATTERN")
				}
				seen[q.Hash()] = true

				fmt.Fprintf(&sheet, "Q%d. [%d marks] %s\n\n", i+1, q.Marks, q.Text)
				fmt.Fprintf(&key, "Q%d. %s\n", i+1, q.Answer)
			}

			sheet.WriteString("\n")
			sheet.WriteString(key.String())

			artifactID := fmt.Sprintf("worksheet_%s_%s", topic, tc.RunID())
			if err := tc.SaveArtifact(artifactID, []byte(sheet.String())); err != nil {
				return nil, err
			}

			return map[string]any{
				"artifact_id": artifactID,
				"questions":   count,
				"topic":       topic,
			}, nil
		},
	)
}
