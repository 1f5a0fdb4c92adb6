package oracle

import (
	"fmt"
	"math/rand"
)

// Linear-equation and expression patterns. Coefficients are chosen so x is
// always an integer.

func init() {
	mustRegister(Pattern{
		ID: "solve_one_step", Topic: "algebra", Title: "One-step equation",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			x := randBetween(r, 2, 20)
			b := randBetween(r, 3, 30)
			return Question{
				Text:   fmt.Sprintf("Solve for x: x + %d = %d", b, x+b),
				Answer: itoa(x),
				Steps: []string{
					fmt.Sprintf("Subtract %d from both sides.", b),
					fmt.Sprintf("x = %d − %d = %d.", x+b, b, x),
				},
				Hints: hints(
					"Undo the addition to isolate x.",
					fmt.Sprintf("Subtract %d from both sides.", b),
					fmt.Sprintf("x = %d − %d.", x+b, b),
				),
				Params: map[string]any{"x": x, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "solve_two_step", Topic: "algebra", Title: "Two-step equation",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			x := randBetween(r, 2, 12)
			a := randBetween(r, 2, 9)
			b := randBetween(r, 1, 20)
			return Question{
				Text:   fmt.Sprintf("Solve for x: %dx + %d = %d", a, b, a*x+b),
				Answer: itoa(x),
				Steps: []string{
					fmt.Sprintf("Subtract %d: %dx = %d.", b, a, a*x),
					fmt.Sprintf("Divide by %d: x = %d.", a, x),
				},
				Hints: hints(
					"Undo the addition first, then the multiplication.",
					fmt.Sprintf("Subtract %d from both sides.", b),
					fmt.Sprintf("Now divide %d by %d.", a*x, a),
				),
				Params: map[string]any{"x": x, "a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "solve_both_sides", Topic: "algebra", Title: "Variables on both sides",
		Difficulty: Hard, Marks: 5,
		Generate: func(r *rand.Rand) Question {
			x := randBetween(r, 2, 10)
			a := randBetween(r, 4, 9)
			c := randBetween(r, 1, a-1)
			d := randBetween(r, 1, (a-c)*x-1)
			m := (a-c)*x - d // left-side constant, positive by construction
			return Question{
				Text:   fmt.Sprintf("Solve for x: %dx − %d = %dx + %d", a, m, c, d),
				Answer: itoa(x),
				Steps: []string{
					fmt.Sprintf("Bring x terms together: %dx − %dx = %d + %d.", a, c, d, m),
					fmt.Sprintf("%dx = %d.", a-c, (a-c)*x),
					fmt.Sprintf("x = %d.", x),
				},
				Hints: hints(
					"Move all x terms to one side and constants to the other.",
					fmt.Sprintf("Subtract %dx from both sides.", c),
					fmt.Sprintf("You should reach %dx = %d.", a-c, (a-c)*x),
				),
				Params: map[string]any{"x": x, "a": a, "c": c, "d": d},
			}
		},
	})

	mustRegister(Pattern{
		ID: "evaluate_expression", Topic: "algebra", Title: "Evaluating an expression",
		Difficulty: Easy, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 2, 7)
			b := randBetween(r, 1, 15)
			x := randBetween(r, 2, 9)
			return Question{
				Text:   fmt.Sprintf("Evaluate %dx + %d when x = %d.", a, b, x),
				Answer: itoa(a*x + b),
				Steps: []string{
					fmt.Sprintf("Substitute x = %d: %d × %d + %d.", x, a, x, b),
					fmt.Sprintf("%d + %d = %d.", a*x, b, a*x+b),
				},
				Hints: hints(
					"Replace x with its value.",
					fmt.Sprintf("Compute %d × %d first.", a, x),
					fmt.Sprintf("Then add %d.", b),
				),
				Params: map[string]any{"a": a, "b": b, "x": x},
			}
		},
	})

	mustRegister(Pattern{
		ID: "expand_brackets", Topic: "algebra", Title: "Expanding brackets",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			k := randBetween(r, 2, 8)
			a := randBetween(r, 2, 9)
			b := randBetween(r, 1, 9)
			return Question{
				Text:   fmt.Sprintf("Expand: %d(%dx + %d)", k, a, b),
				Answer: fmt.Sprintf("%dx + %d", k*a, k*b),
				Steps: []string{
					fmt.Sprintf("Multiply each term inside by %d.", k),
					fmt.Sprintf("%d × %dx = %dx and %d × %d = %d.", k, a, k*a, k, b, k*b),
				},
				Hints: hints(
					"Use the distributive law.",
					fmt.Sprintf("Multiply %d by both terms in the bracket.", k),
					fmt.Sprintf("The x term becomes %dx.", k*a),
				),
				Params: map[string]any{"k": k, "a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "collect_like_terms", Topic: "algebra", Title: "Collecting like terms",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 2, 9)
			b := randBetween(r, 2, 9)
			c := randBetween(r, 1, 12)
			return Question{
				Text:   fmt.Sprintf("Simplify: %dx + %dx + %d", a, b, c),
				Answer: fmt.Sprintf("%dx + %d", a+b, c),
				Steps: []string{
					fmt.Sprintf("Combine the x terms: %dx + %dx = %dx.", a, b, a+b),
					fmt.Sprintf("The constant %d stays: %dx + %d.", c, a+b, c),
				},
				Hints: hints(
					"Only terms with the same letter can be combined.",
					fmt.Sprintf("Add the coefficients %d and %d.", a, b),
					fmt.Sprintf("The x part is %dx.", a+b),
				),
				Params: map[string]any{"a": a, "b": b, "c": c},
			}
		},
	})

	mustRegister(Pattern{
		ID: "number_puzzle", Topic: "algebra", Title: "Think-of-a-number puzzle",
		Difficulty: Hard, Marks: 4,
		Generate: func(r *rand.Rand) Question {
			x := randBetween(r, 3, 15)
			k := randBetween(r, 2, 5)
			add := randBetween(r, 1, 10)
			result := k*x + add
			name := pick(r, studentNames)
			return Question{
				Text:   fmt.Sprintf("%s thinks of a number, multiplies it by %d and adds %d to get %d. What was the number?", name, k, add, result),
				Answer: itoa(x),
				Steps: []string{
					fmt.Sprintf("Let the number be x. Then %dx + %d = %d.", k, add, result),
					fmt.Sprintf("Subtract %d: %dx = %d.", add, k, k*x),
					fmt.Sprintf("Divide by %d: x = %d.", k, x),
				},
				Hints: hints(
					"Work backwards from the result.",
					fmt.Sprintf("First undo the +%d.", add),
					fmt.Sprintf("Then divide %d by %d.", k*x, k),
				),
				Params: map[string]any{"x": x, "k": k, "add": add},
			}
		},
	})
}
