package oracle

import "fmt"

// HintLevels is the fixed depth of every question's hint ladder.
const HintLevels = 3

// Hint ladder levels. L1 nudges the student toward the right idea, L2 names
// the method, L3 walks most of the way to the answer.
const (
	HintL1 = iota
	HintL2
	HintL3
)

// ErrHintsExhausted is returned when every hint level has been shown.
var ErrHintsExhausted = fmt.Errorf("all %d hint levels shown", HintLevels)

// NextHint returns the next unseen hint for a question given how many levels
// have already been shown, along with the new shown count. Callers persist
// the count in session state between turns.
func NextHint(q Question, shown int) (string, int, error) {
	if shown < 0 {
		shown = 0
	}
	if shown >= HintLevels {
		return "", shown, ErrHintsExhausted
	}
	return q.Hints[shown], shown + 1, nil
}

// hints builds a hint ladder in generator code, enforcing the fixed depth at
// compile time.
func hints(l1, l2, l3 string) [HintLevels]string {
	return [HintLevels]string{l1, l2, l3}
}
