package oracle

import (
	"fmt"
	"math/rand"
)

// Ratio and proportion patterns. Ratio answers use the "a:b" form; the
// sharing and speed patterns produce plain numbers.

func init() {
	mustRegister(Pattern{
		ID: "simplify_ratio", Topic: "ratio", Title: "Simplifying a ratio",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 2, 9)
			b := randBetween(r, 2, 9)
			g := gcd(a, b)
			a, b = a/g, b/g
			k := pick(r, []int{3, 4, 5, 6, 8})
			return Question{
				Text:   fmt.Sprintf("Simplify the ratio %d : %d.", a*k, b*k),
				Answer: fmt.Sprintf("%d:%d", a, b),
				Steps: []string{
					fmt.Sprintf("The HCF of %d and %d is %d.", a*k, b*k, k),
					fmt.Sprintf("Divide both terms by %d: %d : %d.", k, a, b),
				},
				Hints: hints(
					"Divide both sides of the ratio by the same number.",
					fmt.Sprintf("Find the HCF of %d and %d.", a*k, b*k),
					fmt.Sprintf("Both terms are divisible by %d.", k),
				),
				Params: map[string]any{"a": a * k, "b": b * k},
			}
		},
	})

	mustRegister(Pattern{
		ID: "divide_in_ratio", Topic: "ratio", Title: "Dividing in a ratio",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 1, 5)
			b := randBetween(r, a+1, 7)
			total := (a + b) * randBetween(r, 10, 40)
			name := pick(r, studentNames)
			return Question{
				Text:   fmt.Sprintf("%s divides ₹%d between two friends in the ratio %d : %d. How much does the first friend get?", name, total, a, b),
				Answer: "₹" + itoa(total / (a + b) * a),
				Steps: []string{
					fmt.Sprintf("Total parts = %d + %d = %d.", a, b, a+b),
					fmt.Sprintf("One part = %d ÷ %d = ₹%d.", total, a+b, total/(a+b)),
					fmt.Sprintf("First share = %d × %d = ₹%d.", a, total/(a+b), total/(a+b)*a),
				},
				Hints: hints(
					"Add the ratio terms to find the total number of parts.",
					fmt.Sprintf("Divide ₹%d by %d parts.", total, a+b),
					fmt.Sprintf("One part is ₹%d; the first friend gets %d parts.", total/(a+b), a),
				),
				Params: map[string]any{"a": a, "b": b, "total": total},
			}
		},
	})

	mustRegister(Pattern{
		ID: "proportion_missing_term", Topic: "ratio", Title: "Missing term in a proportion",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 2, 9)
			b := randBetween(r, 2, 9)
			k := randBetween(r, 2, 6)
			return Question{
				Text:   fmt.Sprintf("Find x: %d : %d = %d : x", a, b, a*k),
				Answer: itoa(b * k),
				Steps: []string{
					fmt.Sprintf("In a proportion the cross products are equal: %d × x = %d × %d.", a, b, a*k),
					fmt.Sprintf("x = %d ÷ %d = %d.", b*a*k, a, b*k),
				},
				Hints: hints(
					"Cross-multiply the proportion.",
					fmt.Sprintf("By what factor does %d become %d?", a, a*k),
					fmt.Sprintf("The factor is %d; apply it to %d.", k, b),
				),
				Params: map[string]any{"a": a, "b": b, "k": k},
			}
		},
	})

	mustRegister(Pattern{
		ID: "unitary_method", Topic: "ratio", Title: "Unitary method",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			unit := randBetween(r, 4, 25)
			n1 := randBetween(r, 3, 9)
			n2 := randBetween(r, n1+1, 15)
			return Question{
				Text:   fmt.Sprintf("If %d pens cost ₹%d, what do %d pens cost?", n1, n1*unit, n2),
				Answer: "₹" + itoa(n2 * unit),
				Steps: []string{
					fmt.Sprintf("Cost of one pen = %d ÷ %d = ₹%d.", n1*unit, n1, unit),
					fmt.Sprintf("Cost of %d pens = %d × %d = ₹%d.", n2, n2, unit, n2*unit),
				},
				Hints: hints(
					"First find the cost of one pen.",
					fmt.Sprintf("Divide ₹%d by %d.", n1*unit, n1),
					fmt.Sprintf("One pen costs ₹%d; multiply by %d.", unit, n2),
				),
				Params: map[string]any{"n1": n1, "n2": n2, "unit": unit},
			}
		},
	})

	mustRegister(Pattern{
		ID: "speed_distance_time", Topic: "ratio", Title: "Speed, distance and time",
		Difficulty: Hard, Marks: 4,
		Generate: func(r *rand.Rand) Question {
			speed := pick(r, []int{40, 45, 50, 60, 72, 80})
			hours := randBetween(r, 2, 6)
			return Question{
				Text:   fmt.Sprintf("A train travels at %d km/h for %d hours. How far does it go?", speed, hours),
				Answer: itoa(speed*hours) + " km",
				Steps: []string{
					"Distance = speed × time.",
					fmt.Sprintf("Distance = %d × %d = %d km.", speed, hours, speed*hours),
				},
				Hints: hints(
					"Which formula links speed, distance and time?",
					"Multiply the speed by the number of hours.",
					fmt.Sprintf("Compute %d × %d.", speed, hours),
				),
				Params: map[string]any{"speed": speed, "hours": hours},
			}
		},
	})

	mustRegister(Pattern{
		ID: "inverse_proportion_workers", Topic: "ratio", Title: "Inverse proportion",
		Difficulty: Hard, Marks: 5,
		Generate: func(r *rand.Rand) Question {
			w1 := pick(r, []int{4, 6, 8, 12})
			days1 := randBetween(r, 6, 20)
			w2 := w1 * pick(r, []int{2, 3})
			if w1*days1%w2 != 0 {
				days1 = days1 / w2 * w2
				if days1 == 0 {
					days1 = w2
				}
			}
			days2 := w1 * days1 / w2
			return Question{
				Text:   fmt.Sprintf("%d workers finish a job in %d days. How long would %d workers take?", w1, days1, w2),
				Answer: itoa(days2) + " days",
				Steps: []string{
					fmt.Sprintf("Total work = %d × %d = %d worker-days.", w1, days1, w1*days1),
					fmt.Sprintf("With %d workers: %d ÷ %d = %d days.", w2, w1*days1, w2, days2),
				},
				Hints: hints(
					"More workers means fewer days; this is inverse proportion.",
					"Compute the total work in worker-days first.",
					fmt.Sprintf("The job is %d worker-days; divide by %d.", w1*days1, w2),
				),
				Params: map[string]any{"w1": w1, "days1": days1, "w2": w2},
			}
		},
	})
}
