package handlers

import (
	"log"
	"net/http"

	"github.com/blagoySimandov/trafficjam/internal/api/dto"
	"github.com/blagoySimandov/trafficjam/internal/ports"
)

// RunHandler exposes read-only generation run metadata.
type RunHandler struct {
	Runs ports.RunStore
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	runs, err := h.Runs.ListRuns(r.Context())
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, dto.RunResponse{
			RunID:       run.RunID,
			CountryCode: run.CountryCode,
			Seed:        run.Seed,
			AgentCount:  run.AgentCount,
			PersonCount: run.PersonCount,
			CreatedAt:   run.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
