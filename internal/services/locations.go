package services

import (
	"math"
	"math/rand"

	"github.com/blagoySimandov/trafficjam/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Workplace category used for weighted work-location assignment.
type WorkCategory string

const (
	WorkSupermarket WorkCategory = "supermarket"
	WorkHealthcare  WorkCategory = "healthcare"
	WorkEducation   WorkCategory = "education"
	WorkRetail      WorkCategory = "retail"
	WorkFood        WorkCategory = "food"
)

var foodAmenities = map[string]bool{
	"restaurant": true,
	"cafe":       true,
	"fast_food":  true,
	"bar":        true,
	"pub":        true,
}

var healthcareAmenities = map[string]bool{
	"hospital": true,
	"clinic":   true,
	"doctors":  true,
}

var educationAmenities = map[string]bool{
	"school":       true,
	"kindergarten": true,
	"college":      true,
	"university":   true,
}

// Immutable per-request index of the building catalog, shared read-only by
// all household workers.
type buildingIndex struct {
	work          map[WorkCategory][]*domain.Building
	schools       []*domain.Building
	kindergartens []*domain.Building
	shops         []*domain.Building
	healthcare    []*domain.Building
}

// Classify the catalog once per request. A building may appear in several
// work categories when its tags qualify it for more than one.
func indexBuildings(buildings []*domain.Building) *buildingIndex {
	idx := &buildingIndex{
		work: make(map[WorkCategory][]*domain.Building),
	}

	for _, b := range buildings {
		switch b.Type {
		case domain.BuildingSupermarket:
			idx.work[WorkSupermarket] = append(idx.work[WorkSupermarket], b)
		case domain.BuildingRetail:
			idx.work[WorkRetail] = append(idx.work[WorkRetail], b)
		case domain.BuildingSchool:
			idx.schools = append(idx.schools, b)
			idx.work[WorkEducation] = append(idx.work[WorkEducation], b)
		case domain.BuildingKindergarten:
			idx.kindergartens = append(idx.kindergartens, b)
			idx.work[WorkEducation] = append(idx.work[WorkEducation], b)
		}

		if b.IsHealthcare() || healthcareAmenities[b.Tag("amenity")] {
			idx.healthcare = append(idx.healthcare, b)
			idx.work[WorkHealthcare] = append(idx.work[WorkHealthcare], b)
		}
		if foodAmenities[b.Tag("amenity")] {
			idx.work[WorkFood] = append(idx.work[WorkFood], b)
		}
		if b.Type == domain.BuildingNone && educationAmenities[b.Tag("amenity")] {
			idx.work[WorkEducation] = append(idx.work[WorkEducation], b)
		}

		// Secondary shop classification via tags.
		switch {
		case b.Type == domain.BuildingSupermarket || b.Type == domain.BuildingRetail:
			idx.shops = append(idx.shops, b)
		case b.Tag("shop") != "" || b.Tag("amenity") == "marketplace":
			idx.shops = append(idx.shops, b)
			idx.work[WorkRetail] = append(idx.work[WorkRetail], b)
		}
	}

	return idx
}

// Category dispatch order for renormalized weighted work assignment.
// Fixed ordering keeps the draw deterministic for a given random stream.
var workCategoryOrder = []WorkCategory{
	WorkSupermarket,
	WorkHealthcare,
	WorkEducation,
	WorkRetail,
	WorkFood,
}

// Assign a work building to an employed adult.
// Empty categories are dropped and the weight table renormalized before the
// draw; the building within the winning category is chosen uniformly. When
// no category has buildings the adult keeps no work location.
func assignWork(rng *rand.Rand, adult *domain.Adult, idx *buildingIndex, params Params) {
	categories := make([]WorkCategory, 0, len(workCategoryOrder))
	weights := make([]float64, 0, len(workCategoryOrder))
	for _, c := range workCategoryOrder {
		if len(idx.work[c]) > 0 {
			categories = append(categories, c)
			weights = append(weights, params.WorkCategoryWeights[c])
		}
	}
	if len(categories) == 0 {
		return
	}

	category := categories[weightedIndex(rng, weights)]
	candidates := idx.work[category]

	adult.Work = candidates[rng.Intn(len(candidates))]
	adult.WorkType = string(category)
}

// Assign a school or kindergarten to a child by age band.
// Ages 3-5 attend kindergarten and need a dropoff; 6-11 attend school and
// need a dropoff; 12-17 attend school independently. A child whose required
// category has no buildings gets no school at all.
func assignSchool(rng *rand.Rand, child *domain.Child, idx *buildingIndex, params Params) {
	age := child.Age
	switch {
	case age >= params.KindergartenMinAge && age <= 5:
		if len(idx.kindergartens) > 0 {
			child.School = idx.kindergartens[rng.Intn(len(idx.kindergartens))]
			child.NeedsDropoff = true
		}
	case age >= 6 && age < params.IndependentSchoolAge:
		if len(idx.schools) > 0 {
			child.School = idx.schools[rng.Intn(len(idx.schools))]
			child.NeedsDropoff = true
		}
	case age >= params.IndependentSchoolAge && age <= 17:
		if len(idx.schools) > 0 {
			child.School = idx.schools[rng.Intn(len(idx.schools))]
		}
	}
}

// Kilometers per degree of latitude under the flat-earth approximation.
const kmPerDegreeLat = 111.32

// Bounding box of radiusKm around a point, using the flat-earth degree
// approximation for the radius conversion.
func searchBound(home orb.Point, radiusKm float64) orb.Bound {
	dLat := radiusKm / kmPerDegreeLat
	dLon := radiusKm / (kmPerDegreeLat * math.Cos(home.Y()*math.Pi/180))

	return orb.Bound{
		Min: orb.Point{home.X() - dLon, home.Y() - dLat},
		Max: orb.Point{home.X() + dLon, home.Y() + dLat},
	}
}

// Pick a nearby candidate building around home.
// Candidates inside the bounding box are refined by great-circle distance and
// one in-radius hit is chosen uniformly. When nothing is within the radius
// the globally nearest candidate wins, so a preference is assigned whenever
// at least one candidate exists anywhere.
func findNearby(rng *rand.Rand, home orb.Point, candidates []*domain.Building, radiusKm float64) *domain.Building {
	if len(candidates) == 0 {
		return nil
	}

	bound := searchBound(home, radiusKm)

	within := make([]*domain.Building, 0, len(candidates))
	for _, b := range candidates {
		if !bound.Contains(b.Position) {
			continue
		}
		if geo.DistanceHaversine(home, b.Position) <= radiusKm*1000 {
			within = append(within, b)
		}
	}
	if len(within) > 0 {
		return within[rng.Intn(len(within))]
	}

	nearest := candidates[0]
	nearestDist := geo.DistanceHaversine(home, nearest.Position)
	for _, b := range candidates[1:] {
		if d := geo.DistanceHaversine(home, b.Position); d < nearestDist {
			nearest, nearestDist = b, d
		}
	}
	return nearest
}

// Assign optional shopping and healthcare preferences near an agent's home.
func assignAmenityPreferences(rng *rand.Rand, p *domain.Person, idx *buildingIndex, params Params) {
	p.PreferredShop = findNearby(rng, p.Home.Position, idx.shops, params.ShoppingRadiusKm)
	p.PreferredHealthcare = findNearby(rng, p.Home.Position, idx.healthcare, params.ShoppingRadiusKm)
}
