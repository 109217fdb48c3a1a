package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blagoySimandov/trafficjam/internal/domain"
	"github.com/paulmach/orb"
)

// SQLite-backed implementation of the BuildingRepository port.
type SqliteBuildingRepository struct{ DB *sql.DB }

func NewSqliteBuildingRepository(db *sql.DB) *SqliteBuildingRepository {
	return &SqliteBuildingRepository{DB: db}
}

// Return all buildings stored in the database.
func (s *SqliteBuildingRepository) ListBuildings(ctx context.Context) ([]*domain.Building, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite building repository: DB is nil")
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
	rows, err := s.DB.QueryContext(ctx, query)
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

func scanBuilding(rows *sql.Rows) (*domain.Building, error) {
	var (
		id, buildingType, tagsJSON, footprintJSON string
		x, y                                      float64
	)
	if err := rows.Scan(&id, &x, &y, &buildingType, &tagsJSON, &footprintJSON); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	tags := map[string]string{}
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return nil, fmt.Errorf("decode tags for %q: %w", id, err)
	}

	var vertices [][2]float64
	if err := json.Unmarshal([]byte(footprintJSON), &vertices); err != nil {
		return nil, fmt.Errorf("decode footprint for %q: %w", id, err)
	}
	footprint := make(orb.Ring, 0, len(vertices))
	for _, v := range vertices {
		footprint = append(footprint, orb.Point{v[0], v[1]})
	}

	return &domain.Building{
		ID:        id,
		Position:  orb.Point{x, y},
		Footprint: footprint,
		Type:      domain.BuildingType(buildingType),
		Tags:      tags,
	}, nil
}
