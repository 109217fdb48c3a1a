package services

import (
	"math"

	"github.com/blagoySimandov/trafficjam/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Resolve the population density for a country, falling back to the default
// for unknown codes. Unknown codes degrade rather than error.
func (p Params) populationDensity(countryCode string) int {
	if d, ok := p.DensityByCountry[countryCode]; ok {
		return d
	}
	return p.DefaultDensity
}

// EstimatePopulation converts an area and a country code into a target agent
// count via the density table.
func EstimatePopulation(areaKm2 float64, countryCode string, params Params) int {
	return int(math.Floor(areaKm2 * float64(params.populationDensity(countryCode))))
}

// AreaKm2 computes the area of a bounding rectangle.
// WGS84 bounds use haversine edge lengths; projected bounds are assumed to be
// in meters and use flat rectangle math.
func AreaKm2(b domain.Bounds, crs string) float64 {
	if crs == "EPSG:4326" {
		sw := orb.Point{b.West, b.South}
		nw := orb.Point{b.West, b.North}
		se := orb.Point{b.East, b.South}

		heightKm := geo.DistanceHaversine(sw, nw) / 1000.0
		widthKm := geo.DistanceHaversine(sw, se) / 1000.0
		return heightKm * widthKm
	}

	widthM := b.East - b.West
	heightM := b.North - b.South
	return widthM * heightM / 1_000_000
}
