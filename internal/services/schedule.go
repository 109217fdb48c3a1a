package services

import (
	"math/rand"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

// Cumulative split of adult work departures across 06:00-09:30.
// Most mass sits in the 07:30-08:30 peak.
var adultDepartureCumulative = []float64{0.05, 0.15, 0.35, 0.65, 0.85, 0.95}

// Draw a work departure time from the adult peak-hour distribution.
func adultDepartureTime(rng *rand.Rand) domain.TimeOfDay {
	r := rng.Float64()

	var hour, minLo, minHi int
	switch {
	case r < adultDepartureCumulative[0]:
		hour, minLo, minHi = 6, 0, 29
	case r < adultDepartureCumulative[1]:
		hour, minLo, minHi = 6, 30, 59
	case r < adultDepartureCumulative[2]:
		hour, minLo, minHi = 7, 0, 29
	case r < adultDepartureCumulative[3]:
		hour, minLo, minHi = 7, 30, 59
	case r < adultDepartureCumulative[4]:
		hour, minLo, minHi = 8, 0, 29
	case r < adultDepartureCumulative[5]:
		hour, minLo, minHi = 8, 30, 59
	default:
		hour, minLo, minHi = 9, 0, 29
	}

	return domain.ClockTime(hour, intBetween(rng, minLo, minHi), intBetween(rng, 0, 59))
}

// Draw a late-morning departure time (hours 9/10/11, weighted .4/.4/.2).
func elderlyDepartureTime(rng *rand.Rand) domain.TimeOfDay {
	hour := []int{9, 10, 11}[weightedIndex(rng, []float64{0.4, 0.4, 0.2})]
	return domain.ClockTime(hour, intBetween(rng, 0, 59), 0)
}

// Draw a school departure time conditioned on the child's age.
// Younger children leave with the 8:00-8:30 dropoff wave; secondary-school
// children leave earlier on their own.
func schoolDepartureTime(rng *rand.Rand, age int) domain.TimeOfDay {
	if age < 12 {
		return domain.ClockTime(8, intBetween(rng, 0, 30), 0)
	}

	if weightedIndex(rng, []float64{0.6, 0.4}) == 0 {
		return domain.ClockTime(7, intBetween(rng, 30, 59), 0)
	}
	return domain.ClockTime(8, intBetween(rng, 0, 15), 0)
}

// Draw a work duration: 7-9 hours weighted toward 8, quarter-hour minutes.
func workDuration(rng *rand.Rand) domain.TimeOfDay {
	hours := []int{7, 8, 9}[weightedIndex(rng, []float64{0.25, 0.5, 0.25})]
	minutes := []int{0, 15, 30, 45}[rng.Intn(4)]
	return domain.ClockTime(hours, minutes, 0)
}

// Draw a school-day duration by age band, rounded to the half hour.
func schoolDuration(rng *rand.Rand, age int) domain.TimeOfDay {
	var hours int
	switch {
	case age < 6:
		hours = intBetween(rng, 4, 6)
	case age < 12:
		hours = intBetween(rng, 5, 6)
	default:
		hours = intBetween(rng, 6, 7)
	}

	minutes := []int{0, 30}[rng.Intn(2)]
	return domain.ClockTime(hours, minutes, 0)
}

// Draw an errand duration in [min, max] minutes.
func errandDuration(rng *rand.Rand, params Params) domain.TimeOfDay {
	minutes := intBetween(rng, params.ErrandMinMinutes, params.ErrandMaxMinutes)
	return domain.ClockTime(minutes/60, minutes%60, 0)
}

// Draw the brief school dropoff/pickup stop duration.
func dropoffDuration(rng *rand.Rand, params Params) domain.TimeOfDay {
	return domain.ClockTime(0, intBetween(rng, params.DropoffMinMinutes, params.DropoffMaxMinutes), 0)
}

// Jitter a clock value by up to ±maxMinutes, clamped to the day window.
func addTimeVariation(rng *rand.Rand, t domain.TimeOfDay, maxMinutes int) domain.TimeOfDay {
	variation := intBetween(rng, -maxMinutes, maxMinutes)
	return (t + domain.TimeOfDay(variation)*domain.Minute).Clamp()
}
