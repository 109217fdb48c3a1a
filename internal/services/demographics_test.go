package services

import (
	"math/rand"
	"testing"
)

func TestDrawChildAgeRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		age := drawChildAge(rng)
		if age < 0 || age > 17 {
			t.Fatalf("child age = %d, want 0-17", age)
		}
	}
}

func TestDrawAdultAgeRange(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	working := 0
	for i := 0; i < 1000; i++ {
		age := drawAdultAge(rng)
		if age < 18 || age > 90 {
			t.Fatalf("adult age = %d, want 18-90", age)
		}
		if age <= 64 {
			working++
		}
	}

	// The working-age band carries 0.8 of the mass; with 1000 draws a
	// result below 700 would be far outside expectation.
	if working < 700 {
		t.Errorf("working-age draws = %d of 1000, want at least 700", working)
	}
}

func TestDrawEmploymentOutsideWorkingAge(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	for _, age := range []int{0, 10, 17, 65, 70, 90} {
		employed, student := drawEmployment(rng, age)
		if employed || student {
			t.Errorf("age %d: employed=%v student=%v, want both false", age, employed, student)
		}
	}
}

func TestDrawEmploymentWorkingAge(t *testing.T) {
	rng := rand.New(rand.NewSource(19))

	employedCount := 0
	for i := 0; i < 1000; i++ {
		employed, student := drawEmployment(rng, 40)
		if employed {
			employedCount++
		}
		if student {
			t.Fatalf("age 40 cannot be a student")
		}
	}

	// Employment probability is 0.9.
	if employedCount < 800 {
		t.Errorf("employed draws = %d of 1000, want at least 800", employedCount)
	}
}

func TestDrawEmploymentStudentsOnlyWhenEmployedAndYoung(t *testing.T) {
	rng := rand.New(rand.NewSource(23))

	sawStudent := false
	for i := 0; i < 1000; i++ {
		employed, student := drawEmployment(rng, 21)
		if student && !employed {
			t.Fatalf("student without employment flag")
		}
		if student {
			sawStudent = true
		}
	}

	if !sawStudent {
		t.Errorf("no student drawn in 1000 samples at age 21")
	}
}
