package oracle

import (
	"fmt"
	"math/rand"
)

// Whole-number arithmetic patterns. Operand ranges keep answers inside
// comfortable mental-math territory for the easy grades and push into
// multi-digit work for the medium ones.

func init() {
	mustRegister(Pattern{
		ID: "add_three_digit", Topic: "arithmetic", Title: "Three-digit addition",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 100, 899)
			b := randBetween(r, 100, 899)
			return Question{
				Text:   fmt.Sprintf("Find the sum: %d + %d", a, b),
				Answer: itoa(a + b),
				Steps: []string{
					fmt.Sprintf("Line up the numbers by place value: %d and %d.", a, b),
					fmt.Sprintf("Add column by column, carrying where needed: %d + %d = %d.", a, b, a+b),
				},
				Hints: hints(
					"Add the ones digits first, then tens, then hundreds.",
					"Carry over to the next column whenever a column sum reaches 10.",
					fmt.Sprintf("Start from %d and add %d in parts: first the hundreds, then the rest.", a, b),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "subtract_with_borrow", Topic: "arithmetic", Title: "Subtraction with borrowing",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			b := randBetween(r, 100, 499)
			a := b + randBetween(r, 57, 400)
			return Question{
				Text:   fmt.Sprintf("Find the difference: %d − %d", a, b),
				Answer: itoa(a - b),
				Steps: []string{
					fmt.Sprintf("Write %d above %d aligned by place value.", a, b),
					fmt.Sprintf("Subtract column by column, borrowing where a digit is too small: %d − %d = %d.", a, b, a-b),
				},
				Hints: hints(
					"Subtract the ones digits first.",
					"If the top digit is smaller, borrow 10 from the next column.",
					fmt.Sprintf("Check your result by adding it back to %d; you should get %d.", b, a),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "multiply_two_digit", Topic: "arithmetic", Title: "Two-digit multiplication",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 12, 89)
			b := randBetween(r, 12, 49)
			return Question{
				Text:   fmt.Sprintf("Multiply: %d × %d", a, b),
				Answer: itoa(a * b),
				Steps: []string{
					fmt.Sprintf("Split %d into tens and ones: %d = %d + %d.", b, b, b/10*10, b%10),
					fmt.Sprintf("%d × %d = %d and %d × %d = %d.", a, b/10*10, a*(b/10*10), a, b%10, a*(b%10)),
					fmt.Sprintf("Add the partial products: %d + %d = %d.", a*(b/10*10), a*(b%10), a*b),
				},
				Hints: hints(
					"Break one factor into tens and ones.",
					fmt.Sprintf("Compute %d × %d and %d × %d separately, then add.", a, b/10*10, a, b%10),
					fmt.Sprintf("The first partial product is %d.", a*(b/10*10)),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "divide_with_remainder", Topic: "arithmetic", Title: "Division with remainder",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			d := randBetween(r, 3, 12)
			q := randBetween(r, 13, 99)
			rem := randBetween(r, 1, d-1)
			n := d*q + rem
			return Question{
				Text:   fmt.Sprintf("Divide %d by %d. Give the quotient and remainder as \"q r\".", n, d),
				Answer: fmt.Sprintf("%d %d", q, rem),
				Steps: []string{
					fmt.Sprintf("Find the largest multiple of %d not exceeding %d: %d × %d = %d.", d, n, d, q, d*q),
					fmt.Sprintf("The remainder is %d − %d = %d.", n, d*q, rem),
				},
				Hints: hints(
					fmt.Sprintf("How many whole times does %d fit into %d?", d, n),
					fmt.Sprintf("Try multiples of %d close to %d.", d, n),
					fmt.Sprintf("%d × %d = %d, which is just below %d.", d, q, d*q, n),
				),
				Params: map[string]any{"n": n, "d": d},
			}
		},
	})

	mustRegister(Pattern{
		ID: "order_of_operations", Topic: "arithmetic", Title: "Order of operations",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 2, 9)
			b := randBetween(r, 2, 9)
			c := randBetween(r, 2, 9)
			ans := a + b*c
			return Question{
				Text:   fmt.Sprintf("Evaluate: %d + %d × %d", a, b, c),
				Answer: itoa(ans),
				Steps: []string{
					fmt.Sprintf("Multiplication before addition: %d × %d = %d.", b, c, b*c),
					fmt.Sprintf("Then add: %d + %d = %d.", a, b*c, ans),
				},
				Hints: hints(
					"Which operation comes first, + or ×?",
					"BODMAS: do the multiplication before the addition.",
					fmt.Sprintf("First work out %d × %d.", b, c),
				),
				Params: map[string]any{"a": a, "b": b, "c": c},
			}
		},
	})

	mustRegister(Pattern{
		ID: "square_of_number", Topic: "arithmetic", Title: "Squares",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			n := randBetween(r, 11, 25)
			return Question{
				Text:   fmt.Sprintf("What is %d²?", n),
				Answer: itoa(n * n),
				Steps: []string{
					fmt.Sprintf("%d² means %d × %d.", n, n, n),
					fmt.Sprintf("%d × %d = %d.", n, n, n*n),
				},
				Hints: hints(
					"Squaring a number means multiplying it by itself.",
					fmt.Sprintf("Compute %d × %d.", n, n),
					fmt.Sprintf("Use (%d + %d)² expansion or direct multiplication.", n/10*10, n%10),
				),
				Params: map[string]any{"n": n},
			}
		},
	})

	mustRegister(Pattern{
		ID: "average_of_numbers", Topic: "arithmetic", Title: "Average",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			count := randBetween(r, 4, 6)
			avg := randBetween(r, 10, 50)
			nums := make([]int, count)
			sum := 0
			for i := 0; i < count-1; i++ {
				nums[i] = avg + randBetween(r, -8, 8)
				sum += nums[i]
			}
			nums[count-1] = avg*count - sum
			listed := ""
			for i, n := range nums {
				if i > 0 {
					listed += ", "
				}
				listed += itoa(n)
			}
			return Question{
				Text:   fmt.Sprintf("Find the average of: %s", listed),
				Answer: itoa(avg),
				Steps: []string{
					fmt.Sprintf("Add the numbers: %s gives %d.", listed, avg*count),
					fmt.Sprintf("Divide by how many there are: %d ÷ %d = %d.", avg*count, count, avg),
				},
				Hints: hints(
					"Average = total ÷ count.",
					fmt.Sprintf("First add all %d numbers.", count),
					fmt.Sprintf("The total is %d; now divide by %d.", avg*count, count),
				),
				Params: map[string]any{"nums": listed},
			}
		},
	})
}
