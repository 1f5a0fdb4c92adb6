package oracle

import (
	"fmt"
	"math/rand"
)

// Fraction patterns. Denominators stay small so lowest-terms answers are
// reachable by hand; answers use the canonical "a/b" form that CheckAnswer
// parses numerically.

func init() {
	mustRegister(Pattern{
		ID: "fraction_add_same_denominator", Topic: "fractions", Title: "Adding like fractions",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			den := pick(r, []int{5, 7, 8, 9, 11})
			a := randBetween(r, 1, den-2)
			b := randBetween(r, 1, den-a-1)
			return Question{
				Text:   fmt.Sprintf("Add: %d/%d + %d/%d", a, den, b, den),
				Answer: fracString(a+b, den),
				Steps: []string{
					fmt.Sprintf("The denominators match, so add the numerators: %d + %d = %d.", a, b, a+b),
					fmt.Sprintf("The sum is %d/%d, which simplifies to %s.", a+b, den, fracString(a+b, den)),
				},
				Hints: hints(
					"When denominators are equal, only the numerators change.",
					fmt.Sprintf("Add %d and %d, keep the denominator %d.", a, b, den),
					fmt.Sprintf("You get %d/%d; reduce it if possible.", a+b, den),
				),
				Params: map[string]any{"a": a, "b": b, "den": den},
			}
		},
	})

	mustRegister(Pattern{
		ID: "fraction_add_unlike", Topic: "fractions", Title: "Adding unlike fractions",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			d1 := pick(r, []int{2, 3, 4})
			d2 := pick(r, []int{5, 6, 8})
			a := randBetween(r, 1, d1-1)
			b := randBetween(r, 1, d2-1)
			l := lcm(d1, d2)
			num := a*(l/d1) + b*(l/d2)
			return Question{
				Text:   fmt.Sprintf("Add: %d/%d + %d/%d", a, d1, b, d2),
				Answer: fracString(num, l),
				Steps: []string{
					fmt.Sprintf("The LCM of %d and %d is %d.", d1, d2, l),
					fmt.Sprintf("Convert: %d/%d = %d/%d and %d/%d = %d/%d.", a, d1, a*(l/d1), l, b, d2, b*(l/d2), l),
					fmt.Sprintf("Add the numerators: %d + %d = %d, giving %s.", a*(l/d1), b*(l/d2), num, fracString(num, l)),
				},
				Hints: hints(
					"First bring both fractions to a common denominator.",
					fmt.Sprintf("Use the LCM of %d and %d as the common denominator.", d1, d2),
					fmt.Sprintf("The LCM is %d; rewrite both fractions over %d and add.", l, l),
				),
				Params: map[string]any{"a": a, "d1": d1, "b": b, "d2": d2},
			}
		},
	})

	mustRegister(Pattern{
		ID: "fraction_subtract_unlike", Topic: "fractions", Title: "Subtracting unlike fractions",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			d1 := pick(r, []int{3, 4, 5})
			d2 := pick(r, []int{6, 8, 10})
			a := randBetween(r, 2, d1-1)
			b := randBetween(r, 1, d2-1)
			l := lcm(d1, d2)
			n1, n2 := a*(l/d1), b*(l/d2)
			if n1 <= n2 {
				// Keep the result positive.
				n1 += l
				a = n1 / (l / d1)
			}
			return Question{
				Text:   fmt.Sprintf("Subtract: %d/%d − %d/%d", a, d1, b, d2),
				Answer: fracString(n1-n2, l),
				Steps: []string{
					fmt.Sprintf("The LCM of %d and %d is %d.", d1, d2, l),
					fmt.Sprintf("Convert: %d/%d = %d/%d and %d/%d = %d/%d.", a, d1, n1, l, b, d2, n2, l),
					fmt.Sprintf("Subtract the numerators: %d − %d = %d, giving %s.", n1, n2, n1-n2, fracString(n1-n2, l)),
				},
				Hints: hints(
					"Bring both fractions to a common denominator first.",
					fmt.Sprintf("Rewrite both fractions over %d.", l),
					fmt.Sprintf("You need %d/%d − %d/%d.", n1, l, n2, l),
				),
				Params: map[string]any{"a": a, "d1": d1, "b": b, "d2": d2},
			}
		},
	})

	mustRegister(Pattern{
		ID: "fraction_multiply", Topic: "fractions", Title: "Multiplying fractions",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 1, 5)
			d1 := randBetween(r, a+1, 9)
			b := randBetween(r, 1, 5)
			d2 := randBetween(r, b+1, 9)
			return Question{
				Text:   fmt.Sprintf("Multiply: %d/%d × %d/%d", a, d1, b, d2),
				Answer: fracString(a*b, d1*d2),
				Steps: []string{
					fmt.Sprintf("Multiply numerators: %d × %d = %d.", a, b, a*b),
					fmt.Sprintf("Multiply denominators: %d × %d = %d.", d1, d2, d1*d2),
					fmt.Sprintf("Simplify %d/%d to %s.", a*b, d1*d2, fracString(a*b, d1*d2)),
				},
				Hints: hints(
					"Multiply straight across: top × top, bottom × bottom.",
					fmt.Sprintf("Numerator is %d × %d; denominator is %d × %d.", a, b, d1, d2),
					fmt.Sprintf("That gives %d/%d before simplifying.", a*b, d1*d2),
				),
				Params: map[string]any{"a": a, "d1": d1, "b": b, "d2": d2},
			}
		},
	})

	mustRegister(Pattern{
		ID: "fraction_divide", Topic: "fractions", Title: "Dividing fractions",
		Difficulty: Hard, Marks: 4,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 1, 5)
			d1 := randBetween(r, a+1, 9)
			b := randBetween(r, 1, 5)
			d2 := randBetween(r, b+1, 9)
			return Question{
				Text:   fmt.Sprintf("Divide: %d/%d ÷ %d/%d", a, d1, b, d2),
				Answer: fracString(a*d2, d1*b),
				Steps: []string{
					fmt.Sprintf("Dividing by %d/%d is multiplying by its reciprocal %d/%d.", b, d2, d2, b),
					fmt.Sprintf("%d/%d × %d/%d = %d/%d.", a, d1, d2, b, a*d2, d1*b),
					fmt.Sprintf("Simplify to %s.", fracString(a*d2, d1*b)),
				},
				Hints: hints(
					"Division by a fraction becomes multiplication.",
					fmt.Sprintf("Flip the second fraction to %d/%d and multiply.", d2, b),
					fmt.Sprintf("Compute %d/%d × %d/%d.", a, d1, d2, b),
				),
				Params: map[string]any{"a": a, "d1": d1, "b": b, "d2": d2},
			}
		},
	})

	mustRegister(Pattern{
		ID: "fraction_simplify", Topic: "fractions", Title: "Simplifying fractions",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			base := pick(r, []int{2, 3, 4, 5})
			den := randBetween(r, base+1, 9)
			num := randBetween(r, 1, den-1)
			g := gcd(num, den)
			num, den = num/g, den/g
			k := pick(r, []int{2, 3, 4, 6})
			return Question{
				Text:   fmt.Sprintf("Write %d/%d in lowest terms.", num*k, den*k),
				Answer: fracString(num, den),
				Steps: []string{
					fmt.Sprintf("The HCF of %d and %d is %d.", num*k, den*k, k),
					fmt.Sprintf("Divide both by %d: %d/%d.", k, num, den),
				},
				Hints: hints(
					"Find a number that divides both the top and the bottom.",
					fmt.Sprintf("Try dividing both %d and %d by their HCF.", num*k, den*k),
					fmt.Sprintf("Both are divisible by %d.", k),
				),
				Params: map[string]any{"num": num * k, "den": den * k},
			}
		},
	})

	mustRegister(Pattern{
		ID: "fraction_of_quantity", Topic: "fractions", Title: "Fraction of a quantity",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			den := pick(r, []int{3, 4, 5, 6, 8})
			num := randBetween(r, 1, den-1)
			whole := den * randBetween(r, 4, 15)
			ans := whole / den * num
			return Question{
				Text:   fmt.Sprintf("Find %d/%d of %d.", num, den, whole),
				Answer: itoa(ans),
				Steps: []string{
					fmt.Sprintf("Divide %d by %d to get one part: %d.", whole, den, whole/den),
					fmt.Sprintf("Multiply by %d: %d × %d = %d.", num, whole/den, num, ans),
				},
				Hints: hints(
					"\"Of\" means multiply.",
					fmt.Sprintf("First find 1/%d of %d.", den, whole),
					fmt.Sprintf("One part is %d; you need %d parts.", whole/den, num),
				),
				Params: map[string]any{"num": num, "den": den, "whole": whole},
			}
		},
	})
}
