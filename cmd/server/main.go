package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/blagoySimandov/trafficjam/internal/adapters/repositories"
	"github.com/blagoySimandov/trafficjam/internal/api"
	"github.com/blagoySimandov/trafficjam/internal/config"
	"github.com/blagoySimandov/trafficjam/internal/services"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite catalog and run store) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/buildings.json")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed the building catalog on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteBuildingRepository(db)
	runs := repositories.NewSqliteRunStore(db)
	router := api.NewRouter(repo, runs, loadParams())

	// Write timeout is generous: generating and serializing a capped
	// population can take a while on small machines.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// Resolve pipeline parameters: shipped defaults plus scalar env overrides.
func loadParams() services.Params {
	params := services.DefaultParams()

	params.DefaultDensity = config.GetInt("DEFAULT_POPULATION_DENSITY", params.DefaultDensity)
	params.AvgHouseholdSize = config.GetFloat("AVG_HOUSEHOLD_SIZE", params.AvgHouseholdSize)
	params.ShoppingRadiusKm = config.GetFloat("SHOPPING_RADIUS_KM", params.ShoppingRadiusKm)
	params.MaxAgents = config.GetInt("MAX_AGENTS", params.MaxAgents)
	params.Workers = config.GetInt("GENERATION_WORKERS", params.Workers)

	return params
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	// A missing seed file is fine when the catalog is already populated.
	if _, err := os.Stat(seedPath); os.IsNotExist(err) {
		log.Printf("seed file %q not found, skipping seed", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
