package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/blagoySimandov/trafficjam/internal/api/dto"
	"github.com/blagoySimandov/trafficjam/internal/domain"
	"github.com/blagoySimandov/trafficjam/internal/matsim"
	"github.com/blagoySimandov/trafficjam/internal/platform/obs"
	"github.com/blagoySimandov/trafficjam/internal/ports"
	"github.com/blagoySimandov/trafficjam/internal/services"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// PopulationHandler runs the generation pipeline and serves the resulting
// MATSim document.
type PopulationHandler struct {
	Repo   ports.BuildingRepository
	Runs   ports.RunStore
	Params services.Params
}

// Generate orchestrates population synthesis for one request.
// Buildings come from the request body when supplied inline, otherwise from
// the stored catalog.
func (h *PopulationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PopulationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	country := strings.TrimSpace(req.CountryCode)
	if country == "" {
		writeError(w, r, http.StatusBadRequest, "country_code is required")
		return
	}

	crs := strings.TrimSpace(req.CRS)
	if crs == "" {
		crs = "EPSG:4326"
	}

	buildings, err := h.resolveBuildings(r, req)
	if err != nil {
		log.Printf("resolve buildings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	genReq := services.GenerateRequest{
		Bounds: domain.Bounds{
			North: req.Bounds.North,
			South: req.Bounds.South,
			East:  req.Bounds.East,
			West:  req.Bounds.West,
		},
		CRS:         crs,
		CountryCode: country,
		Buildings:   buildings,
		HasTransit:  req.HasTransit,
		Seed:        seed,
	}

	stop := obs.Time(r.Context(), "generate population")
	pop, genErr := services.GeneratePopulation(r.Context(), genReq, h.Params)
	stop(&genErr)
	if genErr != nil {
		if errors.Is(genErr, services.ErrNoBuildings) {
			writeError(w, r, http.StatusBadRequest, "no buildings in the requested area")
			return
		}
		log.Printf("generate population failed: %v", genErr)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// Serialize to a buffer first so a mid-document failure never leaks a
	// truncated body to the client.
	var buf bytes.Buffer
	writer := matsim.NewWriter(&buf, crs)
	for _, person := range pop.Persons {
		if err := writer.WritePerson(person.Agent, person.Plan); err != nil {
			log.Printf("serialize population failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}
	if err := writer.Close(); err != nil {
		log.Printf("serialize population failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	runID := uuid.NewString()
	if h.Runs != nil {
		record := ports.RunRecord{
			RunID:       runID,
			CountryCode: country,
			Seed:        seed,
			AgentCount:  len(pop.Agents),
			PersonCount: len(pop.Persons),
			CreatedAt:   time.Now().UTC(),
		}
		if err := h.Runs.SaveRun(r.Context(), record); err != nil {
			// The document is already complete; losing the metadata row
			// is logged but not surfaced.
			log.Printf("save run failed: run_id=%s err=%v", runID, err)
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("X-Run-Id", runID)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write response failed: run_id=%s err=%v", runID, err)
	}
}

func (h *PopulationHandler) resolveBuildings(r *http.Request, req dto.PopulationRequest) ([]*domain.Building, error) {
	if len(req.Buildings) > 0 {
		return buildingsFromDTO(req.Buildings), nil
	}
	return h.Repo.ListBuildings(r.Context())
}

func buildingsFromDTO(in []dto.BuildingDTO) []*domain.Building {
	out := make([]*domain.Building, 0, len(in))
	for _, b := range in {
		footprint := make(orb.Ring, 0, len(b.Footprint))
		for _, v := range b.Footprint {
			footprint = append(footprint, orb.Point{v[0], v[1]})
		}

		tags := b.Tags
		if tags == nil {
			tags = map[string]string{}
		}

		out = append(out, &domain.Building{
			ID:        b.ID,
			Position:  orb.Point{b.X, b.Y},
			Footprint: footprint,
			Type:      domain.BuildingType(b.Type),
			Tags:      tags,
		})
	}
	return out
}
