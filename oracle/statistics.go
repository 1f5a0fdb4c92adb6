package oracle

import (
	"fmt"
	"math/rand"
	"sort"
)

// Data-handling patterns: mean, median, mode and range over small lists.

func formatList(nums []int) string {
	s := ""
	for i, n := range nums {
		if i > 0 {
			s += ", "
		}
		s += itoa(n)
	}
	return s
}

func init() {
	mustRegister(Pattern{
		ID: "mean_of_data", Topic: "statistics", Title: "Mean of a data set",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			count := 5
			mean := randBetween(r, 8, 40)
			nums := make([]int, count)
			sum := 0
			for i := 0; i < count-1; i++ {
				nums[i] = mean + randBetween(r, -6, 6)
				sum += nums[i]
			}
			nums[count-1] = mean*count - sum
			listed := formatList(nums)
			return Question{
				Text:   fmt.Sprintf("Find the mean of: %s", listed),
				Answer: itoa(mean),
				Steps: []string{
					fmt.Sprintf("Sum the values: %s gives %d.", listed, mean*count),
					fmt.Sprintf("Divide by %d: %d ÷ %d = %d.", count, mean*count, count, mean),
				},
				Hints: hints(
					"Mean = sum of values ÷ number of values.",
					"Add all five numbers first.",
					fmt.Sprintf("The sum is %d; divide by %d.", mean*count, count),
				),
				Params: map[string]any{"nums": listed},
			}
		},
	})

	mustRegister(Pattern{
		ID: "median_of_data", Topic: "statistics", Title: "Median of a data set",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			nums := make([]int, 5)
			used := map[int]bool{}
			for i := range nums {
				for {
					n := randBetween(r, 3, 50)
					if !used[n] {
						used[n] = true
						nums[i] = n
						break
					}
				}
			}
			listed := formatList(nums)
			ordered := append([]int(nil), nums...)
			sort.Ints(ordered)
			return Question{
				Text:   fmt.Sprintf("Find the median of: %s", listed),
				Answer: itoa(ordered[2]),
				Steps: []string{
					fmt.Sprintf("Order the values: %s.", formatList(ordered)),
					fmt.Sprintf("The middle value of five is the third: %d.", ordered[2]),
				},
				Hints: hints(
					"The median is the middle value once sorted.",
					"Arrange the numbers from smallest to largest first.",
					fmt.Sprintf("Sorted, the list is %s; take the middle one.", formatList(ordered)),
				),
				Params: map[string]any{"nums": listed},
			}
		},
	})

	mustRegister(Pattern{
		ID: "mode_of_data", Topic: "statistics", Title: "Mode of a data set",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			mode := randBetween(r, 2, 20)
			nums := []int{mode, mode, mode}
			used := map[int]bool{mode: true}
			for len(nums) < 7 {
				n := randBetween(r, 2, 25)
				if !used[n] {
					used[n] = true
					nums = append(nums, n)
				}
			}
			r.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
			listed := formatList(nums)
			return Question{
				Text:   fmt.Sprintf("Find the mode of: %s", listed),
				Answer: itoa(mode),
				Steps: []string{
					"Count how often each value appears.",
					fmt.Sprintf("%d appears three times, more than any other value.", mode),
				},
				Hints: hints(
					"The mode is the most frequent value.",
					"Tally each number's occurrences.",
					fmt.Sprintf("One value appears three times in %s.", listed),
				),
				Params: map[string]any{"nums": listed},
			}
		},
	})

	mustRegister(Pattern{
		ID: "range_of_data", Topic: "statistics", Title: "Range of a data set",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			nums := make([]int, 6)
			for i := range nums {
				nums[i] = randBetween(r, 5, 60)
			}
			listed := formatList(nums)
			lo, hi := nums[0], nums[0]
			for _, n := range nums[1:] {
				if n < lo {
					lo = n
				}
				if n > hi {
					hi = n
				}
			}
			return Question{
				Text:   fmt.Sprintf("Find the range of: %s", listed),
				Answer: itoa(hi - lo),
				Steps: []string{
					fmt.Sprintf("The largest value is %d and the smallest is %d.", hi, lo),
					fmt.Sprintf("Range = %d − %d = %d.", hi, lo, hi-lo),
				},
				Hints: hints(
					"Range = largest value − smallest value.",
					fmt.Sprintf("Pick out the biggest and smallest numbers in %s.", listed),
					fmt.Sprintf("Subtract %d from %d.", lo, hi),
				),
				Params: map[string]any{"nums": listed},
			}
		},
	})
}
