package api

import (
	"net/http"

	"github.com/blagoySimandov/trafficjam/internal/api/handlers"
	"github.com/blagoySimandov/trafficjam/internal/ports"
	"github.com/blagoySimandov/trafficjam/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.BuildingRepository, runs ports.RunStore, params services.Params) http.Handler {
	mux := http.NewServeMux()

	buildingHandler := &handlers.BuildingHandler{Repo: repo}
	populationHandler := &handlers.PopulationHandler{
		Repo:   repo,
		Runs:   runs,
		Params: params,
	}
	runHandler := &handlers.RunHandler{Runs: runs}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/buildings", buildingHandler.List)
	mux.HandleFunc("/population", populationHandler.Generate)
	mux.HandleFunc("/runs", runHandler.List)

	return loggingMiddleware(mux)
}
