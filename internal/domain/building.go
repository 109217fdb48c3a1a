package domain

import "github.com/paulmach/orb"

// Closed classification of buildings as supplied by the map-data layer.
// The zero value means the building carries no recognized type.
type BuildingType string

const (
	BuildingNone         BuildingType = ""
	BuildingSupermarket  BuildingType = "supermarket"
	BuildingRetail       BuildingType = "retail"
	BuildingApartments   BuildingType = "apartments"
	BuildingResidential  BuildingType = "residential"
	BuildingSchool       BuildingType = "school"
	BuildingKindergarten BuildingType = "kindergarten"
	BuildingHospital     BuildingType = "hospital"
	BuildingClinic       BuildingType = "clinic"
	BuildingDoctors      BuildingType = "doctors"
	BuildingParking      BuildingType = "parking"
)

// Represents a single building from the map-data layer.
// Buildings are read-only input: the generation pipeline never mutates them
// and all agents share references to the same catalog.
type Building struct {
	ID        string
	Position  orb.Point
	Footprint orb.Ring
	Type      BuildingType
	Tags      map[string]string
}

// Return the value of an OSM-style tag, or "" when absent.
func (b *Building) Tag(key string) string {
	return b.Tags[key]
}

// Report whether the building can anchor a household.
func (b *Building) IsResidential() bool {
	return b.Type == BuildingApartments || b.Type == BuildingResidential
}

// Report whether the building provides healthcare.
func (b *Building) IsHealthcare() bool {
	return b.Type == BuildingHospital || b.Type == BuildingClinic || b.Type == BuildingDoctors
}

// Geographic bounds of the generation area as supplied by the caller.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}
