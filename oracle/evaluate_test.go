package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		name      string
		expected  string
		submitted string
		correct   bool
	}{
		{"exact match", "42", "42", true},
		{"whitespace and case", "Prime", "  prime ", true},
		{"thousands separator", "1250", "1,250", true},
		{"rupee symbol", "₹500", "500", true},
		{"rs prefix", "₹500", "Rs.500", true},
		{"percent sign", "25%", "25", true},
		{"unit suffix cm", "42", "42 cm", true},
		{"unit suffix km", "240 km", "240", true},
		{"decimal equivalence", "0.5", "0.50", true},
		{"fraction equals decimal", "3/4", "0.75", true},
		{"fraction lowest terms vs raw", "3/4", "6/8", true},
		{"tolerance", "0.3333333", "0.3333334", true},
		{"wrong number", "42", "43", false},
		{"wrong word", "prime", "composite", false},
		{"empty submission", "42", "", false},
		{"quotient remainder pair", "7 3", "7 3", true},
		{"quotient remainder mismatch", "7 3", "7 4", false},
		{"ratio form", "2:3", "2:3", true},
		{"ratio mismatch", "2:3", "3:2", false},
		{"answer phrase before ratio", "8:7", "my answer is 8:7", true},
		{"answer phrase before number", "42", "The answer is 42", true},
		{"answer colon", "3/4", "answer: 3/4", true},
		{"it is phrase", "25%", "it is 25", true},
		{"answer phrase with wrong value", "8:7", "my answer is 7:8", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CheckAnswer(tt.expected, tt.submitted)
			assert.Equal(t, tt.correct, v.Correct)
			assert.Equal(t, tt.expected, v.Expected)
			assert.Equal(t, tt.submitted, v.Submitted)
		})
	}
}

func TestParseNumeric(t *testing.T) {
	f, ok := parseNumeric("3/4")
	assert.True(t, ok)
	assert.InDelta(t, 0.75, f, 1e-9)

	_, ok = parseNumeric("3/0")
	assert.False(t, ok)

	_, ok = parseNumeric("prime")
	assert.False(t, ok)

	_, ok = parseNumeric("")
	assert.False(t, ok)
}

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "1250", normalizeAnswer(" 1,250 "))
	assert.Equal(t, "500", normalizeAnswer("₹500"))
	assert.Equal(t, "42", normalizeAnswer("42 cm²"))
	assert.Equal(t, "25", normalizeAnswer("25%"))
	assert.Equal(t, "prime", normalizeAnswer("  PRIME "))
	assert.Equal(t, "8:7", normalizeAnswer("my answer is 8:7"))
	assert.Equal(t, "120", normalizeAnswer("The answer is 120 km"))
	// A bare phrase with nothing after it is left alone, not emptied.
	assert.Equal(t, "answer:", normalizeAnswer("answer:"))
}
