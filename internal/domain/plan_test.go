package domain

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestDailyPlanAddActivityInterleavesLegs(t *testing.T) {
	home := orb.Point{-6.26, 53.35}
	work := orb.Point{-6.25, 53.34}

	depart := ClockTime(8, 0, 0)
	workDur := ClockTime(8, 0, 0)

	plan := &DailyPlan{}
	plan.AddActivity(Activity{Type: ActivityHome, Location: home, EndTime: &depart}, "")
	plan.AddActivity(Activity{Type: ActivityWork, Location: work, Duration: &workDur}, ModeCar)
	plan.AddActivity(Activity{Type: ActivityHome, Location: home}, ModeCar)

	if len(plan.Activities) != 3 {
		t.Fatalf("activities = %d, want 3", len(plan.Activities))
	}
	if len(plan.Legs) != len(plan.Activities)-1 {
		t.Fatalf("legs = %d, want %d", len(plan.Legs), len(plan.Activities)-1)
	}
	if plan.Legs[0].Mode != ModeCar {
		t.Errorf("leg mode = %q, want %q", plan.Legs[0].Mode, ModeCar)
	}

	last := plan.Activities[len(plan.Activities)-1]
	if last.EndTime != nil || last.Duration != nil {
		t.Errorf("terminal activity must carry neither end time nor duration")
	}
}

func TestDailyPlanSortActivitiesRestoresOrder(t *testing.T) {
	early := ClockTime(7, 30, 0)
	late := ClockTime(9, 0, 0)
	dur := ClockTime(1, 0, 0)

	plan := &DailyPlan{
		Activities: []Activity{
			{Type: ActivityHome, EndTime: &late},
			{Type: ActivityHome, EndTime: &early},
			{Type: ActivityShopping, Duration: &dur},
			{Type: ActivityHome},
		},
	}

	plan.SortActivities()

	if plan.Activities[0].EndTime == nil || *plan.Activities[0].EndTime != early {
		t.Fatalf("first activity end time = %v, want %v", plan.Activities[0].EndTime, early)
	}
	if plan.Activities[1].EndTime == nil || *plan.Activities[1].EndTime != late {
		t.Fatalf("second activity end time = %v, want %v", plan.Activities[1].EndTime, late)
	}
	if plan.Activities[2].Type != ActivityShopping {
		t.Errorf("duration-only activity moved out of tail position")
	}
	if plan.Activities[3].Type != ActivityHome || plan.Activities[3].EndTime != nil {
		t.Errorf("terminal home activity must stay last")
	}
}

func TestTimeOfDayFormatting(t *testing.T) {
	cases := []struct {
		in   TimeOfDay
		want string
	}{
		{ClockTime(0, 0, 0), "00:00:00"},
		{ClockTime(8, 5, 30), "08:05:30"},
		{ClockTime(23, 59, 0), "23:59:00"},
	}

	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("String(%d) = %q, want %q", int(c.in), got, c.want)
		}
	}
}

func TestTimeOfDayClamp(t *testing.T) {
	if got := (ClockTime(25, 0, 0)).Clamp(); got != EndOfDay {
		t.Errorf("clamp above day = %v, want %v", got, EndOfDay)
	}
	if got := TimeOfDay(-300).Clamp(); got != 0 {
		t.Errorf("clamp below zero = %v, want 0", got)
	}
}
