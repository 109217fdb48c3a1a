package services

import (
	"math/rand"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

// GeneratePlan builds the daily activity chain for one agent.
//
// Dispatch is an ordered decision table; the first matching archetype wins:
//
//  1. dropoff-and-work adult (dropper, employed, child with a school)
//  2. elderly adult
//  3. employed non-dropper adult
//  4. non-employed, non-elderly adult
//  5. independent school child
//
// Agents matching no archetype (dependent children, whose school trip lives
// inside the dropper's plan) get a nil plan and are omitted from the output.
func GeneratePlan(rng *rand.Rand, agent domain.Agent, params Params) *domain.DailyPlan {
	var plan *domain.DailyPlan

	switch a := agent.(type) {
	case *domain.Adult:
		plan = generateAdultPlan(rng, a, params)
	case *domain.Child:
		plan = generateChildPlan(rng, a, params)
	}

	if plan != nil {
		// Jittered times may arrive out of order; restore chronology
		// before the plan is serialized.
		plan.SortActivities()
	}
	return plan
}

func generateAdultPlan(rng *rand.Rand, a *domain.Adult, params Params) *domain.DailyPlan {
	if a.NeedsToDropoffChildren && a.Employed && a.Work != nil {
		if child := firstChildWithSchool(a.Children); child != nil {
			return dropoffWorkPlan(rng, a, child, params)
		}
	}

	if a.Age >= params.ElderlyAge {
		return errandPlan(rng, a, params.HealthcareChance, params)
	}

	if a.Employed {
		if a.Work == nil {
			// No workplace could be assigned; degrade to a
			// shopping-only day rather than dropping the agent.
			return errandPlan(rng, a, 0, params)
		}
		return workShoppingPlan(rng, a, params)
	}

	return errandPlan(rng, a, 0, params)
}

func firstChildWithSchool(children []*domain.Child) *domain.Child {
	for _, c := range children {
		if c.School != nil {
			return c
		}
	}
	return nil
}

// home -> school dropoff -> work -> school pickup -> home.
func dropoffWorkPlan(rng *rand.Rand, a *domain.Adult, child *domain.Child, params Params) *domain.DailyPlan {
	mode := a.PreferredTransport
	plan := &domain.DailyPlan{}

	departure := schoolDepartureTime(rng, child.Age)
	dropoff := dropoffDuration(rng, params)
	work := workDuration(rng)
	pickup := dropoffDuration(rng, params)

	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityHome,
		Location: a.Home.Position,
		EndTime:  &departure,
	}, "")
	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityEducation,
		Location: child.School.Position,
		Duration: &dropoff,
	}, mode)
	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityWork,
		Location: a.Work.Position,
		Duration: &work,
	}, mode)
	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityEducation,
		Location: child.School.Position,
		Duration: &pickup,
	}, mode)
	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityHome,
		Location: a.Home.Position,
	}, mode)

	return plan
}

// home -> work -> optional shopping -> home.
func workShoppingPlan(rng *rand.Rand, a *domain.Adult, params Params) *domain.DailyPlan {
	mode := a.PreferredTransport
	plan := &domain.DailyPlan{}

	departure := adultDepartureTime(rng)
	work := workDuration(rng)

	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityHome,
		Location: a.Home.Position,
		EndTime:  &departure,
	}, "")
	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityWork,
		Location: a.Work.Position,
		Duration: &work,
	}, mode)

	if rng.Float64() < params.ShoppingChance && a.PreferredShop != nil {
		shopping := errandDuration(rng, params)
		plan.AddActivity(domain.Activity{
			Type:     domain.ActivityShopping,
			Location: a.PreferredShop.Position,
			Duration: &shopping,
		}, mode)
	}

	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityHome,
		Location: a.Home.Position,
	}, mode)

	return plan
}

// home -> single errand -> home.
//
// Serves both the elderly archetype (healthcareChance > 0) and non-employed
// adults. Missing candidates shorten the day to a home-to-home round trip.
//
// TODO: give non-employed adults their own departure distribution instead of
// reusing the late-morning elderly one.
func errandPlan(rng *rand.Rand, a *domain.Adult, healthcareChance float64, params Params) *domain.DailyPlan {
	mode := a.PreferredTransport
	plan := &domain.DailyPlan{}

	departure := elderlyDepartureTime(rng)
	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityHome,
		Location: a.Home.Position,
		EndTime:  &departure,
	}, "")

	errandType := domain.ActivityShopping
	errandAt := a.PreferredShop
	if healthcareChance > 0 && rng.Float64() < healthcareChance && a.PreferredHealthcare != nil {
		errandType = domain.ActivityHealthcare
		errandAt = a.PreferredHealthcare
	}

	if errandAt != nil {
		dur := errandDuration(rng, params)
		plan.AddActivity(domain.Activity{
			Type:     errandType,
			Location: errandAt.Position,
			Duration: &dur,
		}, mode)
	}

	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityHome,
		Location: a.Home.Position,
	}, mode)

	return plan
}

// home -> school -> home for children old enough to travel alone.
func generateChildPlan(rng *rand.Rand, c *domain.Child, params Params) *domain.DailyPlan {
	if c.NeedsDropoff || c.School == nil || c.Age < params.IndependentSchoolAge {
		return nil
	}

	mode := c.PreferredTransport
	plan := &domain.DailyPlan{}

	departure := schoolDepartureTime(rng, c.Age)
	school := schoolDuration(rng, c.Age)

	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityHome,
		Location: c.Home.Position,
		EndTime:  &departure,
	}, "")
	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityEducation,
		Location: c.School.Position,
		Duration: &school,
	}, mode)
	plan.AddActivity(domain.Activity{
		Type:     domain.ActivityHome,
		Location: c.Home.Position,
	}, mode)

	return plan
}
