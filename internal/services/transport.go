package services

import (
	"math/rand"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

// Draw public-transport usage for an agent.
// All probabilities are gated by transit availability in the region.
func drawPublicTransportUse(rng *rand.Rand, age int, employed, hasTransit bool) bool {
	if !hasTransit {
		return false
	}

	switch {
	case age >= 16 && age <= 25:
		return rng.Float64() > 0.4
	case age >= 65:
		return rng.Float64() > 0.6
	case !employed:
		return rng.Float64() > 0.5
	default:
		return rng.Float64() > 0.7
	}
}

// Draw car ownership. The designated dropper almost always has a car;
// everyone else owns one when they skip public transport, or probabilistically
// once old enough to plausibly own one anyway.
func drawCarOwnership(rng *rand.Rand, age int, usesPT, isDropper bool) bool {
	if isDropper {
		return rng.Float64() < 0.85
	}
	return !usesPT || (age >= 25 && rng.Float64() > 0.3)
}

// Resolve the single preferred mode from the ownership flags.
func resolvePreferredMode(hasCar, usesPT bool) domain.TransportMode {
	switch {
	case hasCar:
		return domain.ModeCar
	case usesPT:
		return domain.ModePT
	default:
		return domain.ModeWalk
	}
}

// Assign transport preference flags to one agent.
func assignTransportPreference(rng *rand.Rand, p *domain.Person, employed, isDropper, hasTransit bool) {
	p.UsesPublicTransport = drawPublicTransportUse(rng, p.Age, employed, hasTransit)
	p.HasCar = drawCarOwnership(rng, p.Age, p.UsesPublicTransport, isDropper)
	p.PreferredTransport = resolvePreferredMode(p.HasCar, p.UsesPublicTransport)
}
