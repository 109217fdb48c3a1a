package domain

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// Clock value measured in seconds since midnight.
// Used both for activity end times and for durations, which MATSim writes in
// the same HH:MM:SS notation.
type TimeOfDay int

const (
	Minute TimeOfDay = 60
	Hour   TimeOfDay = 3600

	// Last admissible clock value of a simulated day (23:59:00).
	EndOfDay TimeOfDay = 23*Hour + 59*Minute
)

// Build a clock value from components.
func ClockTime(hours, minutes, seconds int) TimeOfDay {
	return TimeOfDay(hours)*Hour + TimeOfDay(minutes)*Minute + TimeOfDay(seconds)
}

// Clamp to the [00:00, 23:59] day window.
func (t TimeOfDay) Clamp() TimeOfDay {
	if t < 0 {
		return 0
	}
	if t > EndOfDay {
		return EndOfDay
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

// Activity classification emitted into the plan document.
type ActivityType string

const (
	ActivityHome       ActivityType = "home"
	ActivityWork       ActivityType = "work"
	ActivityEducation  ActivityType = "education"
	ActivityShopping   ActivityType = "shopping"
	ActivityHealthcare ActivityType = "healthcare"
)

// One timed stop in a daily plan. A non-terminal activity carries exactly one
// of EndTime or Duration; the terminal activity carries neither.
type Activity struct {
	Type     ActivityType
	Location orb.Point
	EndTime  *TimeOfDay
	Duration *TimeOfDay
}

// Transport segment between two consecutive activities.
type Leg struct {
	Mode TransportMode
}

// Ordered chain of activities interleaved with legs.
// Invariant: len(Legs) == len(Activities)-1 for any non-empty plan.
type DailyPlan struct {
	Activities []Activity
	Legs       []Leg
}

// Append an activity, inserting the connecting leg when the plan already has
// a previous activity and a mode is given.
func (p *DailyPlan) AddActivity(a Activity, legMode TransportMode) {
	if len(p.Activities) > 0 && legMode != "" {
		p.Legs = append(p.Legs, Leg{Mode: legMode})
	}
	p.Activities = append(p.Activities, a)
}

// Restore chronological order after time jitter.
// Activities with an explicit end time sort by it; duration-only and terminal
// activities keep their insertion order at the tail, since their start times
// are implied by the preceding chain.
func (p *DailyPlan) SortActivities() {
	sort.SliceStable(p.Activities, func(i, j int) bool {
		ai, aj := p.Activities[i], p.Activities[j]
		if ai.EndTime == nil || aj.EndTime == nil {
			return aj.EndTime == nil && ai.EndTime != nil
		}
		return *ai.EndTime < *aj.EndTime
	})
}
