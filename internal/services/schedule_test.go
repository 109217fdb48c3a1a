package services

import (
	"math/rand"
	"testing"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

func TestAdultDepartureTimeWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	lo := domain.ClockTime(6, 0, 0)
	hi := domain.ClockTime(9, 29, 59)
	for i := 0; i < 2000; i++ {
		got := adultDepartureTime(rng)
		if got < lo || got > hi {
			t.Fatalf("departure %s outside 06:00:00-09:29:59", got)
		}
	}
}

func TestAdultDeparturePeakHours(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	// 07:30-08:29 carries half the cumulative mass.
	peak := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		got := adultDepartureTime(rng)
		if got >= domain.ClockTime(7, 30, 0) && got < domain.ClockTime(8, 30, 0) {
			peak++
		}
	}

	if peak < trials*35/100 {
		t.Errorf("peak window draws = %d/%d, want at least 35%%", peak, trials)
	}
}

func TestElderlyDepartureHours(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	seen := map[domain.TimeOfDay]bool{}
	for i := 0; i < 2000; i++ {
		got := elderlyDepartureTime(rng)
		hour := got / domain.Hour
		if hour < 9 || hour > 11 {
			t.Fatalf("elderly departure %s outside hours 9-11", got)
		}
		seen[hour] = true
	}

	for _, hour := range []domain.TimeOfDay{9, 10, 11} {
		if !seen[hour] {
			t.Errorf("hour %d never drawn", hour)
		}
	}
}

func TestSchoolDepartureTimeByAge(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		young := schoolDepartureTime(rng, 8)
		if young < domain.ClockTime(8, 0, 0) || young > domain.ClockTime(8, 30, 0) {
			t.Fatalf("young departure %s outside 08:00-08:30", young)
		}

		teen := schoolDepartureTime(rng, 15)
		early := teen >= domain.ClockTime(7, 30, 0) && teen <= domain.ClockTime(7, 59, 0)
		late := teen >= domain.ClockTime(8, 0, 0) && teen <= domain.ClockTime(8, 15, 0)
		if !early && !late {
			t.Fatalf("teen departure %s outside either band", teen)
		}
	}
}

func TestWorkDurationValues(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	validMinutes := map[domain.TimeOfDay]bool{0: true, 15: true, 30: true, 45: true}
	for i := 0; i < 1000; i++ {
		got := workDuration(rng)
		hours := got / domain.Hour
		minutes := got % domain.Hour / domain.Minute

		if hours < 7 || hours > 9 {
			t.Fatalf("work duration %s outside 7-9 hours", got)
		}
		if !validMinutes[minutes] {
			t.Fatalf("work duration %s not on a quarter hour", got)
		}
	}
}

func TestSchoolDurationBands(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	cases := []struct {
		age     int
		minHour domain.TimeOfDay
		maxHour domain.TimeOfDay
	}{
		{4, 4, 6},
		{9, 5, 6},
		{15, 6, 7},
	}

	for _, c := range cases {
		for i := 0; i < 500; i++ {
			got := schoolDuration(rng, c.age)
			hours := got / domain.Hour
			minutes := got % domain.Hour / domain.Minute

			if hours < c.minHour || hours > c.maxHour {
				t.Fatalf("age %d: duration %s outside %d-%d hours", c.age, got, c.minHour, c.maxHour)
			}
			if minutes != 0 && minutes != 30 {
				t.Fatalf("age %d: duration %s not on a half hour", c.age, got)
			}
		}
	}
}

func TestErrandAndDropoffDurations(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	params := DefaultParams()

	for i := 0; i < 1000; i++ {
		errand := errandDuration(rng, params)
		if errand < domain.TimeOfDay(params.ErrandMinMinutes)*domain.Minute ||
			errand > domain.TimeOfDay(params.ErrandMaxMinutes)*domain.Minute {
			t.Fatalf("errand duration %s outside configured range", errand)
		}

		dropoff := dropoffDuration(rng, params)
		if dropoff < domain.TimeOfDay(params.DropoffMinMinutes)*domain.Minute ||
			dropoff > domain.TimeOfDay(params.DropoffMaxMinutes)*domain.Minute {
			t.Fatalf("dropoff duration %s outside configured range", dropoff)
		}
	}
}

func TestAddTimeVariationStaysInDay(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		early := addTimeVariation(rng, domain.ClockTime(0, 5, 0), 30)
		if early < 0 || early > domain.EndOfDay {
			t.Fatalf("varied time %s escaped the day window", early)
		}

		late := addTimeVariation(rng, domain.EndOfDay, 30)
		if late > domain.EndOfDay {
			t.Fatalf("varied time %s past end of day", late)
		}
	}
}

func TestAddTimeVariationBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	base := domain.ClockTime(8, 0, 0)

	for i := 0; i < 1000; i++ {
		got := addTimeVariation(rng, base, 10)
		diff := got - base
		if diff < 0 {
			diff = -diff
		}
		if diff > 10*domain.Minute {
			t.Fatalf("variation %s exceeds 10 minutes from %s", got, base)
		}
	}
}
