package ports

import (
	"context"
	"time"
)

// Metadata recorded for one completed generation run.
type RunRecord struct {
	RunID       string
	CountryCode string
	Seed        int64
	AgentCount  int
	PersonCount int
	CreatedAt   time.Time
}

// Port: a boundary for persisting and listing generation run metadata.
type RunStore interface {
	SaveRun(ctx context.Context, run RunRecord) error
	ListRuns(ctx context.Context) ([]RunRecord, error)
}
