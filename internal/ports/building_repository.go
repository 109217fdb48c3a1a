package ports

import (
	"context"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

// Port: a boundary for retrieving the Building catalog from a data source.
type BuildingRepository interface {
	// Retrieve all buildings available for population generation.
	ListBuildings(ctx context.Context) ([]*domain.Building, error)
}
