package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blagoySimandov/trafficjam/internal/ports"
)

// SQLite-backed implementation of the RunStore port.
type SqliteRunStore struct{ DB *sql.DB }

func NewSqliteRunStore(db *sql.DB) *SqliteRunStore {
	return &SqliteRunStore{DB: db}
}

// Record one completed generation run.
func (s *SqliteRunStore) SaveRun(ctx context.Context, run ports.RunRecord) error {
	if s.DB == nil {
		return errors.New("sqlite run store: DB is nil")
	}

	query := `
	INSERT INTO runs (run_id, country_code, seed, agent_count, person_count, created_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(
		ctx, query,
		run.RunID, run.CountryCode, run.Seed, run.AgentCount, run.PersonCount, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save run: insert %q: %w", run.RunID, err)
	}

	return nil
}

// Return all recorded runs, newest first.
func (s *SqliteRunStore) ListRuns(ctx context.Context) ([]ports.RunRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite run store: DB is nil")
	}

	query := `
	SELECT run_id, country_code, seed, agent_count, person_count, created_at
	FROM runs
	ORDER BY created_at DESC, run_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]ports.RunRecord, 0, 16)
	for rows.Next() {
		var r ports.RunRecord
		if err := rows.Scan(&r.RunID, &r.CountryCode, &r.Seed, &r.AgentCount, &r.PersonCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
