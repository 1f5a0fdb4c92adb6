package oracle

import (
	"fmt"
	"math/rand"
)

// Decimal patterns. Values are built from integer tenths and hundredths so
// every answer is exact in float64 and ftoa renders it cleanly.

func init() {
	mustRegister(Pattern{
		ID: "decimal_add", Topic: "decimals", Title: "Adding decimals",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 11, 499) // tenths
			b := randBetween(r, 11, 499)
			fa, fb := float64(a)/10, float64(b)/10
			return Question{
				Text:   fmt.Sprintf("Add: %s + %s", ftoa(fa), ftoa(fb)),
				Answer: ftoa(float64(a+b) / 10),
				Steps: []string{
					"Line up the decimal points.",
					fmt.Sprintf("Add as with whole numbers: %s + %s = %s.", ftoa(fa), ftoa(fb), ftoa(float64(a+b)/10)),
				},
				Hints: hints(
					"Write the numbers one under the other with decimal points aligned.",
					"Add digit by digit just like whole numbers, keeping the point in place.",
					fmt.Sprintf("Think of it as %d tenths + %d tenths.", a, b),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "decimal_subtract", Topic: "decimals", Title: "Subtracting decimals",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			b := randBetween(r, 15, 300) // hundredths
			a := b + randBetween(r, 17, 500)
			fa, fb := float64(a)/100, float64(b)/100
			return Question{
				Text:   fmt.Sprintf("Subtract: %s − %s", ftoa(fa), ftoa(fb)),
				Answer: ftoa(float64(a-b) / 100),
				Steps: []string{
					"Line up the decimal points, padding with zeros if needed.",
					fmt.Sprintf("Subtract: %s − %s = %s.", ftoa(fa), ftoa(fb), ftoa(float64(a-b)/100)),
				},
				Hints: hints(
					"Align the decimal points before subtracting.",
					"Borrow across the decimal point exactly as with whole numbers.",
					fmt.Sprintf("Work in hundredths: %d − %d hundredths.", a, b),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "decimal_multiply_whole", Topic: "decimals", Title: "Decimal times whole number",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 11, 99) // tenths
			k := randBetween(r, 3, 12)
			fa := float64(a) / 10
			return Question{
				Text:   fmt.Sprintf("Multiply: %s × %d", ftoa(fa), k),
				Answer: ftoa(float64(a*k) / 10),
				Steps: []string{
					fmt.Sprintf("Ignore the point: %d × %d = %d.", a, k, a*k),
					fmt.Sprintf("Restore one decimal place: %s.", ftoa(float64(a*k)/10)),
				},
				Hints: hints(
					"Multiply as whole numbers first, place the point afterwards.",
					fmt.Sprintf("Compute %d × %d, then divide by 10.", a, k),
					fmt.Sprintf("The whole-number product is %d.", a*k),
				),
				Params: map[string]any{"a": a, "k": k},
			}
		},
	})

	mustRegister(Pattern{
		ID: "decimal_divide_by_ten", Topic: "decimals", Title: "Dividing by powers of ten",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			n := randBetween(r, 12, 980)
			pow := pick(r, []int{10, 100})
			return Question{
				Text:   fmt.Sprintf("Divide: %d ÷ %d", n, pow),
				Answer: ftoa(float64(n) / float64(pow)),
				Steps: []string{
					fmt.Sprintf("Dividing by %d moves the decimal point left.", pow),
					fmt.Sprintf("%d ÷ %d = %s.", n, pow, ftoa(float64(n)/float64(pow))),
				},
				Hints: hints(
					"Dividing by 10 or 100 just shifts the decimal point.",
					fmt.Sprintf("How many places does dividing by %d shift the point?", pow),
					fmt.Sprintf("Move the point left in %d.0.", n),
				),
				Params: map[string]any{"n": n, "pow": pow},
			}
		},
	})

	mustRegister(Pattern{
		ID: "decimal_to_fraction", Topic: "decimals", Title: "Decimal to fraction",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			n := randBetween(r, 5, 95)
			if n%10 == 0 {
				n++
			}
			f := float64(n) / 100
			return Question{
				Text:   fmt.Sprintf("Write %s as a fraction in lowest terms.", ftoa(f)),
				Answer: fracString(n, 100),
				Steps: []string{
					fmt.Sprintf("%s means %d hundredths: %d/100.", ftoa(f), n, n),
					fmt.Sprintf("Reduce %d/100 to %s.", n, fracString(n, 100)),
				},
				Hints: hints(
					"Two decimal places means hundredths.",
					fmt.Sprintf("Start from %d/100.", n),
					fmt.Sprintf("Divide top and bottom of %d/100 by their HCF.", n),
				),
				Params: map[string]any{"n": n},
			}
		},
	})
}
