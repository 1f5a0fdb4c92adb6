package oracle

import (
	"fmt"
	"math/rand"
)

// Percentage patterns, including the profit/loss and simple-interest staples.
// Base quantities are chosen as multiples so every answer comes out whole.

func init() {
	mustRegister(Pattern{
		ID: "percent_of_number", Topic: "percentages", Title: "Percent of a number",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			p := pick(r, []int{5, 10, 15, 20, 25, 40, 50, 75})
			base := 20 * randBetween(r, 2, 30)
			ans := base * p / 100
			return Question{
				Text:   fmt.Sprintf("What is %d%% of %d?", p, base),
				Answer: itoa(ans),
				Steps: []string{
					fmt.Sprintf("%d%% means %d/100.", p, p),
					fmt.Sprintf("%d/100 × %d = %d.", p, base, ans),
				},
				Hints: hints(
					"Percent means \"out of 100\".",
					fmt.Sprintf("Multiply %d by %d and divide by 100.", base, p),
					fmt.Sprintf("10%% of %d is %d; scale from there.", base, base/10),
				),
				Params: map[string]any{"p": p, "base": base},
			}
		},
	})

	mustRegister(Pattern{
		ID: "percent_increase", Topic: "percentages", Title: "Percentage increase",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			p := pick(r, []int{10, 20, 25, 50})
			base := 20 * randBetween(r, 3, 25)
			ans := base + base*p/100
			return Question{
				Text:   fmt.Sprintf("Increase %d by %d%%.", base, p),
				Answer: itoa(ans),
				Steps: []string{
					fmt.Sprintf("%d%% of %d is %d.", p, base, base*p/100),
					fmt.Sprintf("Add it to the original: %d + %d = %d.", base, base*p/100, ans),
				},
				Hints: hints(
					"First find the increase amount, then add it on.",
					fmt.Sprintf("Work out %d%% of %d.", p, base),
					fmt.Sprintf("The increase is %d.", base*p/100),
				),
				Params: map[string]any{"p": p, "base": base},
			}
		},
	})

	mustRegister(Pattern{
		ID: "percent_decrease", Topic: "percentages", Title: "Percentage decrease",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			p := pick(r, []int{10, 20, 25, 40})
			base := 20 * randBetween(r, 3, 25)
			ans := base - base*p/100
			return Question{
				Text:   fmt.Sprintf("Decrease %d by %d%%.", base, p),
				Answer: itoa(ans),
				Steps: []string{
					fmt.Sprintf("%d%% of %d is %d.", p, base, base*p/100),
					fmt.Sprintf("Subtract it: %d − %d = %d.", base, base*p/100, ans),
				},
				Hints: hints(
					"Find the decrease amount first.",
					fmt.Sprintf("Work out %d%% of %d, then subtract.", p, base),
					fmt.Sprintf("The decrease is %d.", base*p/100),
				),
				Params: map[string]any{"p": p, "base": base},
			}
		},
	})

	mustRegister(Pattern{
		ID: "express_as_percent", Topic: "percentages", Title: "Express as a percentage",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			whole := pick(r, []int{20, 25, 40, 50, 80})
			part := whole / pick(r, []int{2, 4, 5}) * randBetween(r, 1, 3)
			if part >= whole {
				part = whole / 2
			}
			ans := part * 100 / whole
			return Question{
				Text:   fmt.Sprintf("A student scored %d marks out of %d. What percentage is that?", part, whole),
				Answer: itoa(ans) + "%",
				Steps: []string{
					fmt.Sprintf("Percentage = part/whole × 100 = %d/%d × 100.", part, whole),
					fmt.Sprintf("%d/%d × 100 = %d%%.", part, whole, ans),
				},
				Hints: hints(
					"Divide the score by the total, then multiply by 100.",
					fmt.Sprintf("Compute %d ÷ %d first.", part, whole),
					fmt.Sprintf("Multiply %d by 100 and divide by %d.", part, whole),
				),
				Params: map[string]any{"part": part, "whole": whole},
			}
		},
	})

	mustRegister(Pattern{
		ID: "profit_percent", Topic: "percentages", Title: "Profit percentage",
		Difficulty: Hard, Marks: 5,
		Generate: func(r *rand.Rand) Question {
			cp := 100 * randBetween(r, 2, 12)
			pct := pick(r, []int{5, 10, 15, 20, 25})
			sp := cp + cp*pct/100
			return Question{
				Text:   fmt.Sprintf("A shopkeeper buys an article for ₹%d and sells it for ₹%d. Find the profit percentage.", cp, sp),
				Answer: itoa(pct) + "%",
				Steps: []string{
					fmt.Sprintf("Profit = SP − CP = %d − %d = ₹%d.", sp, cp, sp-cp),
					fmt.Sprintf("Profit%% = profit/CP × 100 = %d/%d × 100 = %d%%.", sp-cp, cp, pct),
				},
				Hints: hints(
					"Profit is selling price minus cost price.",
					"Profit percentage is always computed on the cost price.",
					fmt.Sprintf("The profit is ₹%d on a cost of ₹%d.", sp-cp, cp),
				),
				Params: map[string]any{"cp": cp, "sp": sp},
			}
		},
	})

	mustRegister(Pattern{
		ID: "discount_price", Topic: "percentages", Title: "Discounted price",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			marked := 100 * randBetween(r, 3, 20)
			pct := pick(r, []int{10, 15, 20, 25, 30})
			ans := marked - marked*pct/100
			return Question{
				Text:   fmt.Sprintf("A shirt marked at ₹%d is sold at a %d%% discount. Find the selling price.", marked, pct),
				Answer: "₹" + itoa(ans),
				Steps: []string{
					fmt.Sprintf("Discount = %d%% of %d = ₹%d.", pct, marked, marked*pct/100),
					fmt.Sprintf("Selling price = %d − %d = ₹%d.", marked, marked*pct/100, ans),
				},
				Hints: hints(
					"Find the discount amount first.",
					fmt.Sprintf("Work out %d%% of ₹%d.", pct, marked),
					fmt.Sprintf("Subtract ₹%d from the marked price.", marked*pct/100),
				),
				Params: map[string]any{"marked": marked, "pct": pct},
			}
		},
	})

	mustRegister(Pattern{
		ID: "simple_interest", Topic: "percentages", Title: "Simple interest",
		Difficulty: Hard, Marks: 5,
		Generate: func(r *rand.Rand) Question {
			principal := 500 * randBetween(r, 2, 16)
			rate := pick(r, []int{4, 5, 6, 8, 10})
			years := randBetween(r, 2, 5)
			si := principal * rate * years / 100
			return Question{
				Text:   fmt.Sprintf("Find the simple interest on ₹%d at %d%% per annum for %d years.", principal, rate, years),
				Answer: "₹" + itoa(si),
				Steps: []string{
					"Simple interest = P × R × T / 100.",
					fmt.Sprintf("SI = %d × %d × %d / 100 = ₹%d.", principal, rate, years, si),
				},
				Hints: hints(
					"Use the formula SI = PRT/100.",
					fmt.Sprintf("Substitute P = %d, R = %d, T = %d.", principal, rate, years),
					fmt.Sprintf("Multiply %d × %d × %d, then divide by 100.", principal, rate, years),
				),
				Params: map[string]any{"principal": principal, "rate": rate, "years": years},
			}
		},
	})
}
