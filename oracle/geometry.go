package oracle

import (
	"fmt"
	"math/rand"
)

// Perimeter, area and angle patterns. Circle patterns use r = 7k so π = 22/7
// gives whole-number answers.

func init() {
	mustRegister(Pattern{
		ID: "rectangle_area", Topic: "geometry", Title: "Area of a rectangle",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			l := randBetween(r, 5, 30)
			w := randBetween(r, 3, l-1)
			return Question{
				Text:   fmt.Sprintf("A rectangle is %d cm long and %d cm wide. Find its area.", l, w),
				Answer: itoa(l*w) + " cm²",
				Steps: []string{
					"Area of a rectangle = length × width.",
					fmt.Sprintf("Area = %d × %d = %d cm².", l, w, l*w),
				},
				Hints: hints(
					"Which formula gives the area of a rectangle?",
					"Multiply the length by the width.",
					fmt.Sprintf("Compute %d × %d.", l, w),
				),
				Params: map[string]any{"l": l, "w": w},
			}
		},
	})

	mustRegister(Pattern{
		ID: "rectangle_perimeter", Topic: "geometry", Title: "Perimeter of a rectangle",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			l := randBetween(r, 5, 30)
			w := randBetween(r, 3, l-1)
			return Question{
				Text:   fmt.Sprintf("Find the perimeter of a rectangle %d m long and %d m wide.", l, w),
				Answer: itoa(2*(l+w)) + " m",
				Steps: []string{
					"Perimeter = 2 × (length + width).",
					fmt.Sprintf("Perimeter = 2 × (%d + %d) = %d m.", l, w, 2*(l+w)),
				},
				Hints: hints(
					"The perimeter is the total distance around the shape.",
					fmt.Sprintf("Add %d and %d first.", l, w),
					fmt.Sprintf("Double %d.", l+w),
				),
				Params: map[string]any{"l": l, "w": w},
			}
		},
	})

	mustRegister(Pattern{
		ID: "triangle_area", Topic: "geometry", Title: "Area of a triangle",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			base := 2 * randBetween(r, 3, 15)
			h := randBetween(r, 4, 20)
			return Question{
				Text:   fmt.Sprintf("A triangle has base %d cm and height %d cm. Find its area.", base, h),
				Answer: itoa(base*h/2) + " cm²",
				Steps: []string{
					"Area of a triangle = ½ × base × height.",
					fmt.Sprintf("Area = ½ × %d × %d = %d cm².", base, h, base*h/2),
				},
				Hints: hints(
					"A triangle's area is half of the matching rectangle's.",
					fmt.Sprintf("Compute %d × %d first.", base, h),
					fmt.Sprintf("Halve %d.", base*h),
				),
				Params: map[string]any{"base": base, "h": h},
			}
		},
	})

	mustRegister(Pattern{
		ID: "triangle_missing_angle", Topic: "geometry", Title: "Missing angle of a triangle",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 30, 80)
			b := randBetween(r, 30, 170-a-10)
			return Question{
				Text:   fmt.Sprintf("Two angles of a triangle are %d° and %d°. Find the third angle.", a, b),
				Answer: itoa(180-a-b) + "°",
				Steps: []string{
					"The angles of a triangle add up to 180°.",
					fmt.Sprintf("Third angle = 180 − %d − %d = %d°.", a, b, 180-a-b),
				},
				Hints: hints(
					"What do the three angles of a triangle sum to?",
					fmt.Sprintf("Add %d and %d, then subtract from 180.", a, b),
					fmt.Sprintf("180 − %d = %d.", a+b, 180-a-b),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "circle_circumference", Topic: "geometry", Title: "Circumference of a circle",
		Difficulty: Hard, Marks: 4,
		Generate: func(r *rand.Rand) Question {
			rad := 7 * randBetween(r, 1, 5)
			return Question{
				Text:   fmt.Sprintf("Find the circumference of a circle with radius %d cm. Use π = 22/7.", rad),
				Answer: itoa(2*22*rad/7) + " cm",
				Steps: []string{
					"Circumference = 2πr.",
					fmt.Sprintf("C = 2 × 22/7 × %d = %d cm.", rad, 2*22*rad/7),
				},
				Hints: hints(
					"Use the formula C = 2πr.",
					fmt.Sprintf("Substitute r = %d and π = 22/7.", rad),
					fmt.Sprintf("The radius is a multiple of 7, so the 7 cancels: 2 × 22 × %d.", rad/7),
				),
				Params: map[string]any{"rad": rad},
			}
		},
	})

	mustRegister(Pattern{
		ID: "circle_area", Topic: "geometry", Title: "Area of a circle",
		Difficulty: Hard, Marks: 5,
		Generate: func(r *rand.Rand) Question {
			rad := 7 * randBetween(r, 1, 4)
			return Question{
				Text:   fmt.Sprintf("Find the area of a circle with radius %d cm. Use π = 22/7.", rad),
				Answer: itoa(22*rad*rad/7) + " cm²",
				Steps: []string{
					"Area = πr².",
					fmt.Sprintf("A = 22/7 × %d × %d = %d cm².", rad, rad, 22*rad*rad/7),
				},
				Hints: hints(
					"Use the formula A = πr².",
					fmt.Sprintf("Square the radius first: %d² = %d.", rad, rad*rad),
					fmt.Sprintf("Multiply %d by 22 and divide by 7.", rad*rad),
				),
				Params: map[string]any{"rad": rad},
			}
		},
	})

	mustRegister(Pattern{
		ID: "cuboid_volume", Topic: "geometry", Title: "Volume of a cuboid",
		Difficulty: Medium, Marks: 3,
		Generate: func(r *rand.Rand) Question {
			l := randBetween(r, 4, 15)
			w := randBetween(r, 3, 12)
			h := randBetween(r, 2, 10)
			return Question{
				Text:   fmt.Sprintf("Find the volume of a cuboid %d cm × %d cm × %d cm.", l, w, h),
				Answer: itoa(l*w*h) + " cm³",
				Steps: []string{
					"Volume = length × width × height.",
					fmt.Sprintf("V = %d × %d × %d = %d cm³.", l, w, h, l*w*h),
				},
				Hints: hints(
					"Multiply the three dimensions together.",
					fmt.Sprintf("Start with %d × %d = %d.", l, w, l*w),
					fmt.Sprintf("Then multiply %d by %d.", l*w, h),
				),
				Params: map[string]any{"l": l, "w": w, "h": h},
			}
		},
	})
}
