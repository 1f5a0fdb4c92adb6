package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roand-7/Lokaah-sub001/core"
)

var _ core.MemoryStore = (*InMemoryStore)(nil)

func TestPutGetMergesDelta(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Put("s1", map[string]any{"weak_topic": "fractions"}))
	require.NoError(t, store.Put("s1", map[string]any{"grade": 7}))

	kv, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "fractions", kv["weak_topic"])
	assert.Equal(t, 7, kv["grade"])
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Put("s1", map[string]any{"k": "v"}))

	kv, _ := store.Get("s1")
	kv["k"] = "mutated"

	kv2, _ := store.Get("s1")
	assert.Equal(t, "v", kv2["k"])
}

func TestSearchCaseInsensitiveNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Store("s1", "struggled with Fractions today", nil))
	require.NoError(t, store.Store("s1", "aced percentages quiz", nil))
	require.NoError(t, store.Store("s1", "more fractions practice needed", map[string]any{"topic": "fractions"}))

	results, err := store.Search("s1", "fractions", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "more fractions practice needed", results[0].Content)
	assert.Equal(t, "fractions", results[0].Metadata["topic"])
	assert.Equal(t, "struggled with Fractions today", results[1].Content)
}

func TestSearchRespectsLimit(t *testing.T) {
	store := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Store("s1", fmt.Sprintf("note %d", i), nil))
	}

	results, err := store.Search("s1", "note", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRetentionEvictsOldest(t *testing.T) {
	store := NewInMemoryStore()
	store.retention = 3

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Store("s1", fmt.Sprintf("note %d", i), nil))
	}

	results, err := store.Search("s1", "", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "note 4", results[0].Content)
	assert.Equal(t, "note 2", results[2].Content)
}

func TestDeleteStoredMemory(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Store("s1", "to be removed", nil))

	require.NoError(t, store.Delete("s1", "mem_0"))
	assert.Error(t, store.Delete("s1", "mem_0"))

	results, _ := store.Search("s1", "", 10)
	assert.Empty(t, results)
}
