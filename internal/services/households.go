package services

import (
	"errors"
	"math"
	"math/rand"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

// ErrNoBuildings is returned when the catalog contains no buildings at all:
// no agent can be homed, so generation cannot proceed.
var ErrNoBuildings = errors.New("synthesize households: building list is empty")

// Member counts drawn for a household before its agents exist.
type householdSeed struct {
	home     *domain.Building
	adults   int
	children int
}

// SynthesizeHouseholds partitions the population target into households.
// Each household draws its adult/child counts from the configured weight
// tables and is anchored at one residential building chosen uniformly at
// random. When no residential buildings exist the first half of the catalog
// serves as a fallback.
func synthesizeHouseholds(
	rng *rand.Rand,
	totalPopulation int,
	buildings []*domain.Building,
	params Params,
) ([]householdSeed, error) {
	if len(buildings) == 0 {
		return nil, ErrNoBuildings
	}

	residential := make([]*domain.Building, 0, len(buildings))
	for _, b := range buildings {
		if b.IsResidential() {
			residential = append(residential, b)
		}
	}
	if len(residential) == 0 {
		half := len(buildings) / 2
		if half < 1 {
			half = 1
		}
		residential = buildings[:half]
	}

	numHouseholds := int(math.Floor(float64(totalPopulation) / params.AvgHouseholdSize))

	seeds := make([]householdSeed, 0, numHouseholds)
	for i := 0; i < numHouseholds; i++ {
		seeds = append(seeds, householdSeed{
			home:     residential[rng.Intn(len(residential))],
			adults:   weightedIndex(rng, params.AdultCountWeights) + 1,
			children: weightedIndex(rng, params.ChildCountWeights),
		})
	}

	return seeds, nil
}

// Apply the agent cap at household granularity, keeping the earliest
// households in generation order. Splitting a household would break the
// single-dropper invariant, so excess households are dropped whole.
func truncateHouseholds(seeds []householdSeed, maxAgents int) []householdSeed {
	if maxAgents <= 0 {
		return seeds
	}

	total := 0
	for i, s := range seeds {
		total += s.adults + s.children
		if total > maxAgents {
			return seeds[:i]
		}
	}
	return seeds
}
