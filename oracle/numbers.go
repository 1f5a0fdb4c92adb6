package oracle

import (
	"fmt"
	"math/rand"
)

// Number-theory patterns: factors, multiples, primes and integers.

var smallPrimes = []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func init() {
	mustRegister(Pattern{
		ID: "hcf_of_pair", Topic: "numbers", Title: "Highest common factor",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			g := pick(r, []int{4, 6, 8, 9, 12, 15})
			a := g * pick(r, []int{2, 3, 5})
			b := g * pick(r, []int{4, 7, 9})
			if gcd(a/g, b/g) != 1 {
				b = g * 7
			}
			return Question{
				Text:   fmt.Sprintf("Find the HCF of %d and %d.", a, b),
				Answer: itoa(gcd(a, b)),
				Steps: []string{
					fmt.Sprintf("List or factor: %d = %d × %d and %d = %d × %d.", a, g, a/g, b, g, b/g),
					fmt.Sprintf("The largest shared factor is %d.", gcd(a, b)),
				},
				Hints: hints(
					"The HCF is the largest number dividing both.",
					fmt.Sprintf("Break %d and %d into prime factors.", a, b),
					fmt.Sprintf("Both numbers are divisible by %d.", gcd(a, b)),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "lcm_of_pair", Topic: "numbers", Title: "Lowest common multiple",
		Difficulty: Medium, Marks: 2,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, 4, 12)
			b := randBetween(r, 4, 15)
			if a == b {
				b++
			}
			return Question{
				Text:   fmt.Sprintf("Find the LCM of %d and %d.", a, b),
				Answer: itoa(lcm(a, b)),
				Steps: []string{
					fmt.Sprintf("HCF of %d and %d is %d.", a, b, gcd(a, b)),
					fmt.Sprintf("LCM = %d × %d ÷ %d = %d.", a, b, gcd(a, b), lcm(a, b)),
				},
				Hints: hints(
					"The LCM is the smallest number both divide into.",
					fmt.Sprintf("List multiples of %d until you hit a multiple of %d.", b, a),
					fmt.Sprintf("Use LCM = a × b ÷ HCF with HCF = %d.", gcd(a, b)),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "prime_check", Topic: "numbers", Title: "Prime or composite",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			n := randBetween(r, 20, 99)
			ans := "composite"
			if isPrime(n) {
				ans = "prime"
			}
			step2 := fmt.Sprintf("%d has no divisor other than 1 and itself, so it is prime.", n)
			if ans == "composite" {
				div := 0
				for _, p := range smallPrimes {
					if n%p == 0 {
						div = p
						break
					}
				}
				step2 = fmt.Sprintf("%d is divisible by %d, so it is composite.", n, div)
			}
			return Question{
				Text:   fmt.Sprintf("Is %d prime or composite?", n),
				Answer: ans,
				Steps: []string{
					fmt.Sprintf("Test divisibility of %d by the primes 2, 3, 5, 7.", n),
					step2,
				},
				Hints: hints(
					"A prime has exactly two factors: 1 and itself.",
					fmt.Sprintf("Check whether 2, 3, 5 or 7 divides %d.", n),
					"If any of them divides it, it is composite.",
				),
				Params: map[string]any{"n": n},
			}
		},
	})

	mustRegister(Pattern{
		ID: "prime_factorization", Topic: "numbers", Title: "Prime factorization",
		Difficulty: Hard, Marks: 4,
		Generate: func(r *rand.Rand) Question {
			p1 := pick(r, []int{2, 3})
			p2 := pick(r, []int{3, 5, 7})
			if p2 == p1 {
				p2 = 5
			}
			e1 := randBetween(r, 2, 3)
			n := 1
			for i := 0; i < e1; i++ {
				n *= p1
			}
			n *= p2
			factors := ""
			for i := 0; i < e1; i++ {
				if i > 0 {
					factors += " × "
				}
				factors += itoa(p1)
			}
			factors += " × " + itoa(p2)
			return Question{
				Text:   fmt.Sprintf("Write %d as a product of prime factors.", n),
				Answer: factors,
				Steps: []string{
					fmt.Sprintf("Divide %d repeatedly by the smallest prime that fits.", n),
					fmt.Sprintf("%d = %s.", n, factors),
				},
				Hints: hints(
					"Keep dividing by small primes until you reach 1.",
					fmt.Sprintf("Start by dividing %d by %d.", n, p1),
					fmt.Sprintf("%d divides in %d times; what remains is %d.", p1, e1, p2),
				),
				Params: map[string]any{"n": n},
			}
		},
	})

	mustRegister(Pattern{
		ID: "integer_add_subtract", Topic: "numbers", Title: "Adding and subtracting integers",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			a := randBetween(r, -20, -3)
			b := randBetween(r, 5, 25)
			return Question{
				Text:   fmt.Sprintf("Evaluate: (%d) + %d", a, b),
				Answer: itoa(a + b),
				Steps: []string{
					fmt.Sprintf("Adding %d to %d moves %d steps right on the number line.", b, a, b),
					fmt.Sprintf("%d + %d = %d.", a, b, a+b),
				},
				Hints: hints(
					"Picture the number line.",
					fmt.Sprintf("Start at %d and move %d steps to the right.", a, b),
					fmt.Sprintf("The difference between %d and %d gives the distance from zero.", b, -a),
				),
				Params: map[string]any{"a": a, "b": b},
			}
		},
	})

	mustRegister(Pattern{
		ID: "rounding_nearest", Topic: "numbers", Title: "Rounding",
		Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			n := randBetween(r, 1040, 9990)
			if n%100 == 0 || n%100 == 50 {
				n += 7
			}
			rounded := (n + 50) / 100 * 100
			return Question{
				Text:   fmt.Sprintf("Round %d to the nearest hundred.", n),
				Answer: itoa(rounded),
				Steps: []string{
					fmt.Sprintf("Look at the tens digit of %d.", n),
					fmt.Sprintf("It rounds to %d.", rounded),
				},
				Hints: hints(
					"Which two hundreds does the number sit between?",
					fmt.Sprintf("Is %d closer to %d or %d?", n, n/100*100, n/100*100+100),
					"Tens digit 5 or more rounds up; otherwise round down.",
				),
				Params: map[string]any{"n": n},
			}
		},
	})
}
