package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBuildingsQuery := `
	CREATE TABLE IF NOT EXISTS buildings (
		building_id TEXT PRIMARY KEY,
		x REAL NOT NULL,
		y REAL NOT NULL,
		building_type TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '{}',
		footprint TEXT NOT NULL DEFAULT '[]'
	);
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		country_code TEXT NOT NULL,
		seed INTEGER NOT NULL,
		agent_count INTEGER NOT NULL,
		person_count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`

	createTypeIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_buildings_building_type
	ON buildings(building_type);
	`

	statements := []string{
		createBuildingsQuery,
		createRunsQuery,
		createTypeIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Building record as stored in seed files.
type BuildingSeed struct {
	ID        string            `json:"id"`
	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Type      string            `json:"type"`
	Tags      map[string]string `json:"tags"`
	Footprint [][2]float64      `json:"footprint"`
}

// Populate the database with building data from a JSON file.
// Existing rows with the same id are replaced, so re-seeding is idempotent.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	data, err := loadSeedFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed buildings: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed buildings: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertQuery := `
	INSERT OR REPLACE INTO buildings (building_id, x, y, building_type, tags, footprint)
	VALUES (?, ?, ?, ?, ?, ?);
	`

	for i, b := range data {
		tags, footprint, err := encodeSeedColumns(b)
		if err != nil {
			return fmt.Errorf("seed buildings: row %d: %w", i+1, err)
		}
		if _, err := tx.Exec(insertQuery, b.ID, b.X, b.Y, b.Type, tags, footprint); err != nil {
			return fmt.Errorf("seed buildings: insert %q: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed buildings: commit tx: %w", err)
	}

	return nil
}

func loadSeedFile(jsonPath string) ([]BuildingSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", jsonPath, err)
	}

	var data []BuildingSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	for i, b := range data {
		if strings.TrimSpace(b.ID) == "" {
			return nil, fmt.Errorf("missing building id at index %d", i)
		}
	}

	return data, nil
}

func encodeSeedColumns(b BuildingSeed) (tags string, footprint string, err error) {
	t := b.Tags
	if t == nil {
		t = map[string]string{}
	}
	tagBytes, err := json.Marshal(t)
	if err != nil {
		return "", "", fmt.Errorf("encode tags: %w", err)
	}

	f := b.Footprint
	if f == nil {
		f = [][2]float64{}
	}
	footprintBytes, err := json.Marshal(f)
	if err != nil {
		return "", "", fmt.Errorf("encode footprint: %w", err)
	}

	return string(tagBytes), string(footprintBytes), nil
}
