package dto

type BuildingDTO struct {
	ID        string            `json:"id"`
	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Type      string            `json:"type,omitempty"`
	Tags      map[string]string `json:"tags,omitempty"`
	Footprint [][2]float64      `json:"footprint,omitempty"`
}

type ListBuildingsResponse struct {
	Buildings []BuildingDTO `json:"buildings"`
}
