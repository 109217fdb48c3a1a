package dto

type BoundsDTO struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Request body for POST /population.
// Buildings may be supplied inline; when omitted the server's stored catalog
// is used. Seed is optional and defaults to a time-derived value, which makes
// the run non-reproducible — callers wanting replay must pass one.
type PopulationRequest struct {
	Bounds      BoundsDTO     `json:"bounds"`
	CRS         string        `json:"crs"`
	CountryCode string        `json:"country_code"`
	HasTransit  bool          `json:"has_transit"`
	Seed        *int64        `json:"seed"`
	Buildings   []BuildingDTO `json:"buildings"`
}
