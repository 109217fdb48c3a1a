package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

// Postgres-backed implementation of the BuildingRepository port.
// Shares row decoding with the SQLite variant; only placeholders and schema
// bootstrap differ.
type PostgresBuildingRepository struct{ DB *sql.DB }

func NewPostgresBuildingRepository(db *sql.DB) *PostgresBuildingRepository {
	return &PostgresBuildingRepository{DB: db}
}

// Return all buildings stored in the database.
func (p *PostgresBuildingRepository) ListBuildings(ctx context.Context) ([]*domain.Building, error) {
	if p.DB == nil {
		return nil, errors.New("postgres building repository: DB is nil")
	}

	query := `
	SELECT
		building_id,
		x,
		y,
		building_type,
		tags,
		footprint
	FROM buildings
	ORDER BY building_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list buildings: query buildings table: %w", err)
	}
	defer rows.Close()

	buildings := make([]*domain.Building, 0, 256)
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("list buildings: %w", err)
		}
		buildings = append(buildings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list buildings: row iteration: %w", err)
	}

	return buildings, nil
}

// Initialize the Postgres schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS buildings (
			building_id TEXT PRIMARY KEY,
			x DOUBLE PRECISION NOT NULL,
			y DOUBLE PRECISION NOT NULL,
			building_type TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '{}',
			footprint TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			country_code TEXT NOT NULL,
			seed BIGINT NOT NULL,
			agent_count INTEGER NOT NULL,
			person_count INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_buildings_building_type
		ON buildings(building_type);`,
	}

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}

// Populate Postgres with building data from a JSON seed file.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
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
	INSERT INTO buildings (building_id, x, y, building_type, tags, footprint)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (building_id) DO UPDATE SET
		x = EXCLUDED.x,
		y = EXCLUDED.y,
		building_type = EXCLUDED.building_type,
		tags = EXCLUDED.tags,
		footprint = EXCLUDED.footprint;
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
