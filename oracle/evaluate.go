package oracle

import (
	"strconv"
	"strings"
)

// Verdict reports the outcome of checking a submitted answer.
type Verdict struct {
	Correct   bool   `json:"correct"`
	Expected  string `json:"expected"`
	Submitted string `json:"submitted"`
}

// numericTolerance absorbs rounding differences in decimal answers.
const numericTolerance = 1e-6

// CheckAnswer compares a submitted answer against the expected one. Both
// sides are normalized (whitespace, case, thousands separators, common unit
// suffixes) and compared numerically when both parse as numbers, including
// fraction forms like "3/4". Otherwise a normalized string comparison is
// used.
func CheckAnswer(expected, submitted string) Verdict {
	v := Verdict{Expected: expected, Submitted: submitted}

	ne := normalizeAnswer(expected)
	ns := normalizeAnswer(submitted)

	if ne == ns {
		v.Correct = ne != ""
		return v
	}

	fe, okE := parseNumeric(ne)
	fs, okS := parseNumeric(ns)
	if okE && okS {
		diff := fe - fs
		if diff < 0 {
			diff = -diff
		}
		v.Correct = diff <= numericTolerance
	}

	return v
}

// answerPrefixes are conversational lead-ins students type before the value
// itself ("my answer is 8:7"). Longest prefixes first so "the answer is"
// wins over "the answer".
var answerPrefixes = []string{
	"my answer is", "the answer is", "my answer:", "the answer:",
	"answer is", "answer:", "it is", "it's", "its",
}

// unitSuffixes are stripped from the tail of answers so "42 cm" matches "42".
var unitSuffixes = []string{
	"cm²", "m²", "km²", "cm³", "m³", "sq cm", "sq m", "cu cm",
	"cm", "mm", "km", "kg", "g", "m", "l", "ml",
	"hours", "hour", "hrs", "hr", "minutes", "min", "seconds", "sec",
	"km/h", "m/s", "kmph", "years", "rupees", "rs",
}

func normalizeAnswer(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))

	for _, prefix := range answerPrefixes {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			// Only strip when an actual answer follows the phrase.
			if rest = strings.TrimSpace(rest); rest != "" {
				s = rest
			}
			break
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "rs.")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)

	for _, unit := range unitSuffixes {
		if strings.HasSuffix(s, unit) {
			trimmed := strings.TrimSpace(strings.TrimSuffix(s, unit))
			// Only strip when something numeric-ish remains.
			if trimmed != "" {
				s = trimmed
			}
			break
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

// parseNumeric handles plain numbers and fraction forms "a/b".
func parseNumeric(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN == nil && errD == nil && d != 0 {
			return n / d, true
		}
	}

	return 0, false
}
