package tool

import (
	"context"
	"errors"
	"fmt"
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

// toolHarness gives tools a live ToolContext over in-memory stores.
type toolHarness struct {
	store    *session.InMemoryStore
	artifact *artifact.InMemoryStore
	memory   *memory.InMemoryStore
	runCtx   *core.RunContext
	tc       *core.ToolContext
}

func newToolHarness(t *testing.T) *toolHarness {
	t.Helper()

	h := &toolHarness{
		store:    session.NewInMemoryStore(),
		artifact: artifact.NewInMemoryStore(),
		memory:   memory.NewInMemoryStore(),
	}

	sess, err := h.store.Create("sess")
	require.NoError(t, err)

	h.runCtx = core.NewRunContext(
		context.Background(),
		"sess", "run",
		core.AgentInfo{Name: "ORACLE", Type: "tutor"},
		core.NewTextContent("user", "practice please"),
		0,
		make(chan core.Event, 50),
		nil,
		sess,
		h.store,
		h.artifact,
		h.memory,
		logging.NoOpLogger{},
	)

	h.tc = core.NewToolContext(h.runCtx, "fc-1")
	return h
}

func seededEngine() *oracle.Engine {
	return oracle.NewEngine(func(o *oracle.EngineOptions) { o.Seed = 7 })
}

// serve generates one question and returns its expected answer.
func serve(t *testing.T, h *toolHarness, engine *oracle.Engine, topic string) string {
	t.Helper()

	_, err := NewGenerateQuestionTool(engine).Call(h.tc, map[string]any{"topic": topic})
	require.NoError(t, err)

	v, ok := h.tc.GetState(core.StateKeyOpenQuestion)
	require.True(t, ok)
	q, ok := v.(map[string]any)
	require.True(t, ok)
	answer, _ := q["answer"].(string)
	require.NotEmpty(t, answer)
	return answer
}

func toolCode(t *testing.T, err error) string {
	t.Helper()
	var te *ToolError
	require.ErrorAs(t, err, &te)
	return te.Code
}

func TestGenerateQuestionTool(t *testing.T) {
	h := newToolHarness(t)

	result, err := NewGenerateQuestionTool(seededEngine()).Call(h.tc, map[string]any{
		"topic": "fractions",
	})
	require.NoError(t, err)

	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fractions", m["topic"])
	assert.NotEmpty(t, m["question"])
	assert.NotEmpty(t, m["pattern_id"])

	// Serving a question opens it, resets the hint ladder and records the
	// served hash, all through the accumulated event actions.
	actions := h.tc.Actions()
	assert.Contains(t, actions.StateDelta, core.StateKeyOpenQuestion)
	assert.Equal(t, 0, actions.StateDelta[core.StateKeyHintsShown])

	seen, ok := actions.StateDelta[core.StateKeySeenQuestions].([]string)
	require.True(t, ok)
	assert.Len(t, seen, 1)
}

func TestGenerateQuestionToolUnknownTopic(t *testing.T) {
	h := newToolHarness(t)

	_, err := NewGenerateQuestionTool(seededEngine()).Call(h.tc, map[string]any{
		"topic": "calculus",
	})
	require.Error(t, err)
	assert.Equal(t, "NO_PATTERN", toolCode(t, err))
}

func TestCheckAnswerToolCorrect(t *testing.T) {
	h := newToolHarness(t)
	answer := serve(t, h, seededEngine(), "percentages")

	result, err := NewCheckAnswerTool().Call(h.tc, map[string]any{"answer": answer})
	require.NoError(t, err)

	m := result.(map[string]any)
	assert.Equal(t, true, m["correct"])
	assert.Equal(t, answer, m["expected"])
	assert.Equal(t, 1, m["streak"])
	assert.NotEmpty(t, m["steps"])

	// The question closes and the ladder resets.
	v, _ := h.tc.GetState(core.StateKeyOpenQuestion)
	assert.Nil(t, v)
	assert.Equal(t, 0, h.tc.Actions().StateDelta[core.StateKeyHintsShown])
}

func TestCheckAnswerToolWrongResetsStreak(t *testing.T) {
	h := newToolHarness(t)
	h.tc.SetState(core.StateKeyStreak, 3)
	serve(t, h, seededEngine(), "algebra")

	result, err := NewCheckAnswerTool().Call(h.tc, map[string]any{"answer": "999999"})
	require.NoError(t, err)

	m := result.(map[string]any)
	assert.Equal(t, false, m["correct"])
	assert.Equal(t, oracle.HintLevels, m["hints_available"])

	v, _ := h.tc.GetState(core.StateKeyStreak)
	assert.Equal(t, 0, v)

	// Wrong answers keep the question open for another try.
	q, _ := h.tc.GetState(core.StateKeyOpenQuestion)
	assert.NotNil(t, q)

	// The miss is remembered as a weak topic for revision planning.
	results, err := h.memory.Search("sess", "weak", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "algebra", results[0].Metadata["topic"])
	assert.Equal(t, "weak_topic", results[0].Metadata["kind"])
}

func TestCheckAnswerToolNoOpenQuestion(t *testing.T) {
	h := newToolHarness(t)

	_, err := NewCheckAnswerTool().Call(h.tc, map[string]any{"answer": "12"})
	require.Error(t, err)
	assert.Equal(t, "NO_OPEN_QUESTION", toolCode(t, err))
}

func TestGetHintToolLadder(t *testing.T) {
	h := newToolHarness(t)
	serve(t, h, seededEngine(), "geometry")

	hint := NewGetHintTool()
	for level := 1; level <= oracle.HintLevels; level++ {
		result, err := hint.Call(h.tc, map[string]any{})
		require.NoError(t, err)

		m := result.(map[string]any)
		assert.NotEmpty(t, m["hint"])
		assert.Equal(t, level, m["level"])
		assert.Equal(t, oracle.HintLevels-level, m["remaining"])
	}

	_, err := hint.Call(h.tc, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "HINTS_EXHAUSTED", toolCode(t, err))
}

func TestGetHintToolNoOpenQuestion(t *testing.T) {
	h := newToolHarness(t)

	_, err := NewGetHintTool().Call(h.tc, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "NO_OPEN_QUESTION", toolCode(t, err))
}

func TestSaveWorksheetTool(t *testing.T) {
	h := newToolHarness(t)

	result, err := NewSaveWorksheetTool(seededEngine()).Call(h.tc, map[string]any{
		"topic": "fractions",
		"count": 4,
	})
	require.NoError(t, err)

	m := result.(map[string]any)
	assert.Equal(t, "worksheet_fractions_run", m["artifact_id"])
	assert.Equal(t, 4, m["questions"])

	data, err := h.artifact.Get("sess", "worksheet_fractions_run")
	require.NoError(t, err)
	sheet := string(data)
	assert.Contains(t, sheet, "Worksheet: fractions")
	assert.Contains(t, sheet, "Q4.")
	assert.Contains(t, sheet, "Answer key")
	assert.NotContains(t, sheet, "Q5.")

	assert.Equal(t, len(data), h.tc.Actions().ArtifactDelta["worksheet_fractions_run"])
}

func TestSaveWorksheetToolCountBounds(t *testing.T) {
	h := newToolHarness(t)
	sheet := NewSaveWorksheetTool(seededEngine())

	for _, count := range []int{0, 21} {
		_, err := sheet.Call(h.tc, map[string]any{"topic": "fractions", "count": count})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", toolCode(t, err))
	}
}

func TestSaveWorksheetToolRequiresTopic(t *testing.T) {
	h := newToolHarness(t)

	_, err := NewSaveWorksheetTool(seededEngine()).Call(h.tc, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", toolCode(t, err))
}

func TestProgressTool(t *testing.T) {
	h := newToolHarness(t)

	require.NoError(t, h.store.AppendEvent("sess", core.NewUserMessageEvent("run", "quiz me")))
	require.NoError(t, h.runCtx.RefreshSession())
	serve(t, h, seededEngine(), "fractions")

	result, err := NewProgressTool().Call(h.tc, map[string]any{})
	require.NoError(t, err)

	m := result.(map[string]any)
	assert.Equal(t, 0, m["streak"])
	assert.Equal(t, 1, m["questions_served"])
	assert.Equal(t, true, m["question_open"])
	assert.Equal(t, 1, m["user_turns"])
}

func TestEndSessionTool(t *testing.T) {
	h := newToolHarness(t)

	result, err := NewEndSessionTool().Call(h.tc, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"closed": true}, result)

	actions := h.tc.Actions()
	require.NotNil(t, actions.EndSession)
	assert.True(t, *actions.EndSession)
}

func TestTransferToAgentTool(t *testing.T) {
	h := newToolHarness(t)
	transfer := NewTransferToAgentTool()

	result, err := transfer.Call(h.tc, map[string]any{"agent": "SPARK"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"transferred": true, "agent": "SPARK"}, result)

	actions := h.tc.Actions()
	require.NotNil(t, actions.TransferToAgent)
	assert.Equal(t, "SPARK", *actions.TransferToAgent)

	_, err = transfer.Call(h.tc, map[string]any{})
	assert.Error(t, err)

	_, err = transfer.Call(h.tc, map[string]any{"agent": ""})
	assert.Error(t, err)
}

func TestFunctionToolErrorNormalization(t *testing.T) {
	h := newToolHarness(t)

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value": map[string]any{"type": "string"},
		},
		"required": []string{"value"},
	}

	plain := NewFunctionTool("plain", "fails with a plain error", schema,
		func(_ *core.ToolContext, _ map[string]any) (any, error) {
			return nil, fmt.Errorf("something broke")
		})

	// Missing required argument surfaces as VALIDATION_ERROR before the
	// function runs.
	_, err := plain.Call(h.tc, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", toolCode(t, err))

	// A plain error is wrapped as EXECUTION_ERROR.
	_, err = plain.Call(h.tc, map[string]any{"value": "x"})
	require.Error(t, err)
	assert.Equal(t, "EXECUTION_ERROR", toolCode(t, err))

	// A *ToolError passes through unchanged.
	custom := NewFunctionTool("custom", "fails with a tool error", schema,
		func(_ *core.ToolContext, _ map[string]any) (any, error) {
			return nil, NewToolError("custom", "nope", "NO_PATTERN")
		})

	_, err = custom.Call(h.tc, map[string]any{"value": "x"})
	var te *ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "NO_PATTERN", te.Code)
	assert.Contains(t, te.Error(), "tool error [NO_PATTERN] in custom")
}
