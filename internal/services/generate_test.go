package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

// Small Dublin-ish catalog exercising every assignment stage.
func generateFixture() GenerateRequest {
	buildings := []*domain.Building{
		typedBuilding("r1", domain.BuildingResidential, -6.260, 53.350),
		typedBuilding("r2", domain.BuildingApartments, -6.258, 53.351),
		typedBuilding("r3", domain.BuildingResidential, -6.262, 53.349),
		typedBuilding("s1", domain.BuildingSchool, -6.255, 53.352),
		typedBuilding("k1", domain.BuildingKindergarten, -6.256, 53.348),
		typedBuilding("m1", domain.BuildingSupermarket, -6.252, 53.350),
		typedBuilding("c1", domain.BuildingClinic, -6.251, 53.353),
	}

	return GenerateRequest{
		Bounds: domain.Bounds{
			North: 53.355,
			South: 53.345,
			East:  -6.250,
			West:  -6.265,
		},
		CRS:         "EPSG:4326",
		CountryCode: "IRL",
		Buildings:   buildings,
		HasTransit:  true,
		Seed:        42,
	}
}

func TestGeneratePopulationReproducible(t *testing.T) {
	req := generateFixture()
	params := DefaultParams()

	first, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different populations")
	}
}

func TestGeneratePopulationSeedChangesOutput(t *testing.T) {
	req := generateFixture()
	params := DefaultParams()

	first, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	req.Seed = 43
	second, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if reflect.DeepEqual(first, second) {
		t.Fatalf("different seeds produced identical populations")
	}
}

func TestGeneratePopulationDropperInvariant(t *testing.T) {
	req := generateFixture()
	params := DefaultParams()

	pop, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, hh := range pop.Households {
		needy := make(map[*domain.Child]bool)
		for _, c := range hh.Children {
			if c.NeedsDropoff {
				needy[c] = true
			}
		}

		droppers := 0
		for _, a := range hh.Adults {
			if !a.NeedsToDropoffChildren {
				if len(a.Children) != 0 {
					t.Fatalf("non-dropper carries %d children", len(a.Children))
				}
				continue
			}
			droppers++

			if len(a.Children) != len(needy) {
				t.Fatalf("dropper carries %d children, household has %d needing escort",
					len(a.Children), len(needy))
			}
			for _, c := range a.Children {
				if !needy[c] {
					t.Fatalf("dropper carries a child that needs no escort")
				}
			}
		}

		if len(needy) > 0 && len(hh.Adults) > 0 && droppers != 1 {
			t.Fatalf("droppers = %d, want exactly 1 for a household with needy children", droppers)
		}
		if len(needy) == 0 && droppers != 0 {
			t.Fatalf("droppers = %d for a household with no needy children", droppers)
		}
	}
}

func TestGeneratePopulationAgentCap(t *testing.T) {
	req := generateFixture()
	params := DefaultParams()
	params.MaxAgents = 10

	pop, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(pop.Agents) > params.MaxAgents {
		t.Fatalf("agents = %d, exceeds cap %d", len(pop.Agents), params.MaxAgents)
	}
	if len(pop.Agents) == 0 {
		t.Fatalf("cap of %d eliminated every agent", params.MaxAgents)
	}
}

func TestGeneratePopulationPersonsSubsetOfAgents(t *testing.T) {
	req := generateFixture()
	params := DefaultParams()

	pop, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pop.Persons) == 0 {
		t.Fatalf("no agent received a plan")
	}

	known := make(map[domain.Agent]bool, len(pop.Agents))
	for _, a := range pop.Agents {
		known[a] = true
	}

	for _, pp := range pop.Persons {
		if !known[pp.Agent] {
			t.Fatalf("plan holder %s is not a synthesized agent", pp.Agent.Profile().ID)
		}
		if pp.Plan == nil {
			t.Fatalf("agent %s carries a nil plan", pp.Agent.Profile().ID)
		}
	}

	// Dependent children never serialize on their own.
	for _, pp := range pop.Persons {
		if c, ok := pp.Agent.(*domain.Child); ok && c.NeedsDropoff {
			t.Fatalf("dropoff child %s received its own plan", c.ID)
		}
	}
}

func TestGeneratePopulationUniqueSequentialIDs(t *testing.T) {
	req := generateFixture()
	params := DefaultParams()

	pop, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	seen := make(map[string]bool, len(pop.Agents))
	for _, a := range pop.Agents {
		id := a.Profile().ID
		if id == "" {
			t.Fatalf("agent with empty ID")
		}
		if seen[id] {
			t.Fatalf("duplicate agent ID %s", id)
		}
		seen[id] = true
	}
}

func TestGeneratePopulationCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := GeneratePopulation(ctx, generateFixture(), DefaultParams()); err == nil {
		t.Fatalf("want error for cancelled context")
	}
}

func TestGeneratePopulationNoBuildings(t *testing.T) {
	req := generateFixture()
	req.Buildings = nil

	if _, err := GeneratePopulation(context.Background(), req, DefaultParams()); err == nil {
		t.Fatalf("want error when no buildings exist")
	}
}

func TestGeneratePopulationMembersHaveAttributes(t *testing.T) {
	req := generateFixture()
	params := DefaultParams()

	pop, err := GeneratePopulation(context.Background(), req, params)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, hh := range pop.Households {
		if hh.Home == nil || !hh.Home.IsResidential() {
			t.Fatalf("household home must be a residential building")
		}
		for _, a := range hh.Adults {
			if a.Age < 18 {
				t.Errorf("adult age %d below 18", a.Age)
			}
			if a.Home != hh.Home {
				t.Errorf("adult home differs from household home")
			}
			if a.PreferredTransport == "" {
				t.Errorf("adult %s has no transport preference", a.ID)
			}
		}
		for _, c := range hh.Children {
			if c.Age > 17 {
				t.Errorf("child age %d above 17", c.Age)
			}
			if c.PreferredTransport == "" {
				t.Errorf("child %s has no transport preference", c.ID)
			}
		}
	}
}
