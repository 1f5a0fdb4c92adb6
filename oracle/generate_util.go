package oracle

import (
	"math/rand"
	"strconv"
	"strings"
)

// randBetween returns a uniform integer in [lo, hi].
func randBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func itoa(n int) string { return strconv.Itoa(n) }

// ftoa renders a float without trailing zeros ("2.50" -> "2.5", "3.00" -> "3").
func ftoa(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func lcm(a, b int) int { return a / gcd(a, b) * b }

// fracString renders num/den in lowest terms, collapsing whole numbers.
func fracString(num, den int) string {
	g := gcd(num, den)
	num, den = num/g, den/g
	if den == 1 {
		return itoa(num)
	}
	return itoa(num) + "/" + itoa(den)
}

// pick returns a random element of the slice.
func pick[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}

var studentNames = []string{"Aarav", "Diya", "Ishaan", "Meera", "Rohan", "Priya", "Kabir", "Anaya"}
