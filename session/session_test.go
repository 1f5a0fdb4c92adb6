package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/internal/testutil"
)

var _ core.SessionStore = (*InMemoryStore)(nil)
var _ core.SessionStore = (*RedisStore)(nil)

func TestInMemoryStoreLazyCreate(t *testing.T) {
	store := NewInMemoryStore()

	sess, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	assert.Empty(t, sess.Events)
}

func TestInMemoryStoreCloneIsolation(t *testing.T) {
	store := NewInMemoryStore()

	sess, err := store.Get("s1")
	require.NoError(t, err)
	sess.SetState("k", "mutated")

	fresh, err := store.Get("s1")
	require.NoError(t, err)
	_, ok := fresh.GetState("k")
	assert.False(t, ok, "clone mutation must not leak into the store")
}

func TestInMemoryStoreAppendAndDelta(t *testing.T) {
	store := NewInMemoryStore()

	ev := testutil.NewEventBuilder().Author("VEDA").Run("r1").AssistantText("Namaste!").Build()
	require.NoError(t, store.AppendEvent("s1", ev))
	require.NoError(t, store.ApplyDelta("s1", map[string]any{
		core.StateKeyActiveAgent: "VEDA",
	}))

	sess, err := store.Get("s1")
	require.NoError(t, err)
	require.Len(t, sess.Events, 1)
	assert.Equal(t, "Namaste!", sess.Events[0].Text())

	agent, ok := sess.GetState(core.StateKeyActiveAgent)
	require.True(t, ok)
	assert.Equal(t, "VEDA", agent)
}

func TestInMemoryStoreCreateResets(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.ApplyDelta("s1", map[string]any{"k": "v"}))

	sess, err := store.Create("s1")
	require.NoError(t, err)
	_, ok := sess.GetState("k")
	assert.False(t, ok)
}

func TestSessionCodecRoundTrip(t *testing.T) {
	sess := testutil.NewSessionBuilder("s1").
		ActiveAgent("ORACLE").
		State(core.StateKeyHintsShown, 2).
		Events(
			testutil.NewEventBuilder().Run("r1").UserText("/test fractions").Build(),
			testutil.NewEventBuilder().Author("ORACLE").Run("r1").
				FunctionCall("generate_question", `{"topic":"fractions"}`).Build(),
			testutil.NewEventBuilder().Author("ORACLE").Run("r1").
				FunctionResponse("fc-1", "generate_question", map[string]any{"question": "Add: 1/4 + 2/4"}, nil).Build(),
			testutil.NewEventBuilder().Author("ORACLE").Run("r1").
				AssistantText("Here is your question.").TurnComplete(true).
				StateDelta(core.StateKeyActiveAgent, "ORACLE").Build(),
		).
		Build()

	raw, err := marshalSession(sess)
	require.NoError(t, err)

	decoded, err := unmarshalSession(raw)
	require.NoError(t, err)

	assert.Equal(t, sess.ID, decoded.ID)
	agent, _ := decoded.GetState(core.StateKeyActiveAgent)
	assert.Equal(t, "ORACLE", agent)
	require.Len(t, decoded.Events, 4)

	assert.Equal(t, "/test fractions", decoded.Events[0].Text())

	calls := decoded.Events[1].GetFunctionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "generate_question", calls[0].Name)

	responses := decoded.Events[2].GetFunctionResponses()
	require.Len(t, responses, 1)
	assert.Equal(t, "generate_question", responses[0].Name)

	final := decoded.Events[3]
	require.NotNil(t, final.TurnComplete)
	assert.True(t, *final.TurnComplete)
	assert.Equal(t, "ORACLE", final.Actions.StateDelta[core.StateKeyActiveAgent])
}

func TestSessionCodecUnknownPart(t *testing.T) {
	_, err := decodePart(partRecord{Type: "mystery"})
	assert.Error(t, err)
}
