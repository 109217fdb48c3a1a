package handlers

import (
	"log"
	"net/http"

	"github.com/blagoySimandov/trafficjam/internal/api/dto"
	"github.com/blagoySimandov/trafficjam/internal/ports"
)

// BuildingHandler exposes read-only building catalog endpoints.
type BuildingHandler struct {
	Repo ports.BuildingRepository
}

func (h *BuildingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	buildings, err := h.Repo.ListBuildings(r.Context())
	if err != nil {
		log.Printf("list buildings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListBuildingsResponse{
		Buildings: make([]dto.BuildingDTO, 0, len(buildings)),
	}
	for _, b := range buildings {
		footprint := make([][2]float64, 0, len(b.Footprint))
		for _, p := range b.Footprint {
			footprint = append(footprint, [2]float64{p.X(), p.Y()})
		}

		res.Buildings = append(res.Buildings, dto.BuildingDTO{
			ID:        b.ID,
			X:         b.Position.X(),
			Y:         b.Position.Y(),
			Type:      string(b.Type),
			Tags:      b.Tags,
			Footprint: footprint,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
