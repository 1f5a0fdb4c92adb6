package oracle

import (
	"fmt"
	"math/rand"
)

// Multi-step word problems mixing money, measurement and time.

func init() {
	mustRegister(Pattern{
		ID: "shopping_change", Topic: "word_problems", Title: "Shopping and change",
		Difficulty: Easy, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			name := pick(r, studentNames)
			item1 := randBetween(r, 15, 60)
			item2 := randBetween(r, 10, 45)
			paid := ((item1+item2)/100 + 1) * 100
			change := paid - item1 - item2
			return Question{
				Text:   fmt.Sprintf("%s buys a notebook for ₹%d and a pen for ₹%d, paying with a ₹%d note. How much change is due?", name, item1, item2, paid),
				Answer: "₹" + itoa(change),
				Steps: []string{
					fmt.Sprintf("Total cost = %d + %d = ₹%d.", item1, item2, item1+item2),
					fmt.Sprintf("Change = %d − %d = ₹%d.", paid, item1+item2, change),
				},
				Hints: hints(
					"First find the total cost of both items.",
					fmt.Sprintf("Add ₹%d and ₹%d.", item1, item2),
					fmt.Sprintf("Subtract ₹%d from ₹%d.", item1+item2, paid),
				),
				Params: map[string]any{"item1": item1, "item2": item2, "paid": paid},
			}
		},
	})

	mustRegister(Pattern{
		ID: "age_sum_problem", Topic: "word_problems", Title: "Ages adding up",
		Difficulty: Hard, Marks: 5,
		Generate: func(r *rand.Rand) Question {
			young := randBetween(r, 6, 14)
			diff := randBetween(r, 18, 30)
			name := pick(r, studentNames)
			total := young + young + diff
			return Question{
				Text:   fmt.Sprintf("%s and their mother's ages add up to %d years. The mother is %d years older. How old is %s?", name, total, diff, name),
				Answer: itoa(young),
				Steps: []string{
					fmt.Sprintf("Let the child's age be x; the mother's is x + %d.", diff),
					fmt.Sprintf("x + x + %d = %d, so 2x = %d.", diff, total, 2*young),
					fmt.Sprintf("x = %d.", young),
				},
				Hints: hints(
					"Call the child's age x and write the mother's age in terms of x.",
					fmt.Sprintf("The equation is 2x + %d = %d.", diff, total),
					fmt.Sprintf("Subtract %d from %d, then halve.", diff, total),
				),
				Params: map[string]any{"young": young, "diff": diff},
			}
		},
	})

	mustRegister(Pattern{
		ID: "water_tank_fill", Topic: "word_problems", Title: "Filling a tank",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			rate := pick(r, []int{15, 20, 25, 30, 40})
			minutes := randBetween(r, 6, 18)
			return Question{
				Text:   fmt.Sprintf("A tap fills a tank at %d litres per minute. How much water flows in %d minutes?", rate, minutes),
				Answer: itoa(rate*minutes) + " l",
				Steps: []string{
					fmt.Sprintf("Each minute adds %d litres.", rate),
					fmt.Sprintf("%d × %d = %d litres.", rate, minutes, rate*minutes),
				},
				Hints: hints(
					"Multiply the rate by the time.",
					fmt.Sprintf("How many litres in 1 minute? In %d minutes?", minutes),
					fmt.Sprintf("Compute %d × %d.", rate, minutes),
				),
				Params: map[string]any{"rate": rate, "minutes": minutes},
			}
		},
	})

	mustRegister(Pattern{
		ID: "bus_journey_time", Topic: "word_problems", Title: "Journey time",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			speed := pick(r, []int{30, 40, 50, 60})
			hours := randBetween(r, 2, 5)
			dist := speed * hours
			return Question{
				Text:   fmt.Sprintf("A bus covers %d km at a steady %d km/h. How long does the journey take?", dist, speed),
				Answer: itoa(hours) + " hours",
				Steps: []string{
					"Time = distance ÷ speed.",
					fmt.Sprintf("Time = %d ÷ %d = %d hours.", dist, speed, hours),
				},
				Hints: hints(
					"Rearrange distance = speed × time.",
					fmt.Sprintf("Divide %d by %d.", dist, speed),
					fmt.Sprintf("How many times does %d go into %d?", speed, dist),
				),
				Params: map[string]any{"dist": dist, "speed": speed},
			}
		},
	})

	mustRegister(Pattern{
		ID: "chocolates_sharing", Topic: "word_problems", Title: "Sharing equally",
		Difficulty: Easy, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			friends := randBetween(r, 4, 9)
			each := randBetween(r, 3, 12)
			left := randBetween(r, 1, friends-1)
			total := friends*each + left
			name := pick(r, studentNames)
			return Question{
				Text:   fmt.Sprintf("%s shares %d chocolates equally among %d friends. How many does each friend get, and how many are left over? Answer as \"each left\".", name, total, friends),
				Answer: fmt.Sprintf("%d %d", each, left),
				Steps: []string{
					fmt.Sprintf("%d ÷ %d gives quotient %d.", total, friends, each),
					fmt.Sprintf("%d × %d = %d, leaving %d over.", friends, each, friends*each, left),
				},
				Hints: hints(
					"This is a division with remainder.",
					fmt.Sprintf("How many whole times does %d fit into %d?", friends, total),
					fmt.Sprintf("%d × %d = %d; compare with %d.", friends, each, friends*each, total),
				),
				Params: map[string]any{"total": total, "friends": friends},
			}
		},
	})
}
