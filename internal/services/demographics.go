package services

import "math/rand"

// Draw an age for a child household member: uniform over 0-17.
func drawChildAge(rng *rand.Rand) int {
	return intBetween(rng, 0, 17)
}

// Draw an age for an adult household member.
// Weighted toward working age: uniform(18-64) with weight 0.8, otherwise
// uniform(65-90).
func drawAdultAge(rng *rand.Rand) int {
	if weightedIndex(rng, []float64{0.8, 0.2}) == 0 {
		return intBetween(rng, 18, 64)
	}
	return intBetween(rng, 65, 90)
}

// Draw employment and student status for an adult of the given age.
// Only working-age adults (18-64) can be employed; employed adults aged
// 18-25 are additionally students with probability 0.7.
func drawEmployment(rng *rand.Rand, age int) (employed, isStudent bool) {
	if age < 18 || age >= 65 {
		return false, false
	}

	employed = rng.Float64() < 0.9
	if employed && age >= 18 && age <= 25 {
		isStudent = rng.Float64() < 0.7
	}
	return employed, isStudent
}
