package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextHintLadder(t *testing.T) {
	q := Question{Hints: hints("nudge", "method", "walkthrough")}

	h, shown, err := NextHint(q, 0)
	require.NoError(t, err)
	assert.Equal(t, "nudge", h)
	assert.Equal(t, 1, shown)

	h, shown, err = NextHint(q, shown)
	require.NoError(t, err)
	assert.Equal(t, "method", h)
	assert.Equal(t, 2, shown)

	h, shown, err = NextHint(q, shown)
	require.NoError(t, err)
	assert.Equal(t, "walkthrough", h)
	assert.Equal(t, 3, shown)

	_, shown, err = NextHint(q, shown)
	assert.ErrorIs(t, err, ErrHintsExhausted)
	assert.Equal(t, 3, shown)
}

func TestNextHintClampsNegative(t *testing.T) {
	q := Question{Hints: hints("a", "b", "c")}

	h, shown, err := NextHint(q, -5)
	require.NoError(t, err)
	assert.Equal(t, "a", h)
	assert.Equal(t, 1, shown)
}
