package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

// GenerateRequest carries the in-memory inputs of one generation run.
type GenerateRequest struct {
	Bounds      domain.Bounds
	CRS         string
	CountryCode string
	Buildings   []*domain.Building
	HasTransit  bool
	Seed        int64
}

// One agent together with its generated plan.
type PersonPlan struct {
	Agent domain.Agent
	Plan  *domain.DailyPlan
}

// Population is the result of a generation run.
// Agents holds every synthesized agent; Persons holds only those that
// received a plan, in deterministic generation order — these are the agents
// that appear in the serialized document.
type Population struct {
	CRS        string
	Country    string
	Households []*domain.Household
	Agents     []domain.Agent
	Persons    []PersonPlan
}

// GeneratePopulation runs the full pipeline: population estimate, household
// synthesis, demographics, location and transport assignment, and plan
// generation.
//
// Households are independent once the building catalog is fixed, so the
// per-household step runs on a bounded worker pool. Each household derives
// its own random stream from the request seed, which keeps output
// byte-identical for a fixed seed regardless of scheduling.
func GeneratePopulation(ctx context.Context, req GenerateRequest, params Params) (*Population, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate population: %w", err)
	}

	areaKm2 := AreaKm2(req.Bounds, req.CRS)
	totalPopulation := EstimatePopulation(areaKm2, req.CountryCode, params)

	baseRng := rand.New(rand.NewSource(req.Seed))
	seeds, err := synthesizeHouseholds(baseRng, totalPopulation, req.Buildings, params)
	if err != nil {
		return nil, fmt.Errorf("generate population: %w", err)
	}
	seeds = truncateHouseholds(seeds, params.MaxAgents)

	idx := indexBuildings(req.Buildings)

	// Pre-compute agent ID offsets so workers can label agents without
	// coordination.
	offsets := make([]int, len(seeds))
	next := 1
	for i, s := range seeds {
		offsets[i] = next
		next += s.adults + s.children
	}

	// Each worker writes only its own index, so no locking is needed.
	households := make([]*domain.Household, len(seeds))
	plansByHousehold := make([][]PersonPlan, len(seeds))

	workers := params.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, seed := range seeds {
		wg.Add(1)
		go func(i int, seed householdSeed) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			rng := rand.New(rand.NewSource(req.Seed + int64(i) + 1))
			hh := buildHousehold(rng, seed, offsets[i], idx, req.HasTransit, params)
			households[i] = hh

			for _, a := range hh.Adults {
				if plan := GeneratePlan(rng, a, params); plan != nil {
					plansByHousehold[i] = append(plansByHousehold[i], PersonPlan{Agent: a, Plan: plan})
				}
			}
			for _, c := range hh.Children {
				if plan := GeneratePlan(rng, c, params); plan != nil {
					plansByHousehold[i] = append(plansByHousehold[i], PersonPlan{Agent: c, Plan: plan})
				}
			}
		}(i, seed)
	}
	wg.Wait()

	pop := &Population{
		CRS:        req.CRS,
		Country:    req.CountryCode,
		Households: households,
	}

	for i, hh := range households {
		for _, a := range hh.Adults {
			pop.Agents = append(pop.Agents, a)
		}
		for _, c := range hh.Children {
			pop.Agents = append(pop.Agents, c)
		}
		pop.Persons = append(pop.Persons, plansByHousehold[i]...)
	}

	log.Printf(
		"generated population country=%s area_km2=%.2f target=%d households=%d agents=%d persons=%d",
		req.CountryCode, areaKm2, totalPopulation, len(households), len(pop.Agents), len(pop.Persons),
	)

	return pop, nil
}

// Build one fully-formed household: members, demographics, schools, dropoff
// designation, work, transport preferences and amenity preferences.
func buildHousehold(
	rng *rand.Rand,
	seed householdSeed,
	idOffset int,
	idx *buildingIndex,
	hasTransit bool,
	params Params,
) *domain.Household {
	hh := &domain.Household{Home: seed.home}

	id := idOffset
	for i := 0; i < seed.adults; i++ {
		adult := &domain.Adult{Person: domain.Person{
			ID:   fmt.Sprintf("agent_%d", id),
			Age:  drawAdultAge(rng),
			Home: seed.home,
		}}
		adult.Employed, adult.IsStudent = drawEmployment(rng, adult.Age)
		hh.Adults = append(hh.Adults, adult)
		id++
	}
	for i := 0; i < seed.children; i++ {
		child := &domain.Child{Person: domain.Person{
			ID:   fmt.Sprintf("agent_%d", id),
			Age:  drawChildAge(rng),
			Home: seed.home,
		}}
		hh.Children = append(hh.Children, child)
		id++
	}

	for _, c := range hh.Children {
		assignSchool(rng, c, idx, params)
	}
	designateDropper(rng, hh)

	for _, a := range hh.Adults {
		if a.Employed {
			assignWork(rng, a, idx, params)
		}
		assignTransportPreference(rng, &a.Person, a.Employed, a.NeedsToDropoffChildren, hasTransit)
		assignAmenityPreferences(rng, &a.Person, idx, params)
	}
	for _, c := range hh.Children {
		assignTransportPreference(rng, &c.Person, false, false, hasTransit)
		assignAmenityPreferences(rng, &c.Person, idx, params)
	}

	return hh
}

// Designate exactly one adult as the dropper when any child needs escorting.
// The dropper's Children list holds precisely the children needing dropoff.
func designateDropper(rng *rand.Rand, hh *domain.Household) {
	needy := make([]*domain.Child, 0, len(hh.Children))
	for _, c := range hh.Children {
		if c.NeedsDropoff {
			needy = append(needy, c)
		}
	}
	if len(needy) == 0 || len(hh.Adults) == 0 {
		return
	}

	dropper := hh.Adults[rng.Intn(len(hh.Adults))]
	dropper.NeedsToDropoffChildren = true
	dropper.Children = needy
}
