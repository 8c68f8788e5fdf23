package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SolveRun records one invocation of the solve pipeline: its fingerprint,
// outcome, objective value, and the rendered output payload, so a caller can
// audit or re-export a past month's schedule without re-solving.
type SolveRun struct {
	ID             string    `db:"id"`
	Fingerprint    string    `db:"fingerprint"`
	Feasible       bool      `db:"feasible"`
	ObjectiveValue float64   `db:"objective_value"`
	OutputJSON     []byte    `db:"output_json"`
	WallTimeMs     int64     `db:"wall_time_ms"`
	CreatedAt      time.Time `db:"created_at"`
}

// SolveRunRepository persists solve runs to Postgres, grounded on
// internal/repository/semester_schedule_repository.go's sqlx usage pattern.
type SolveRunRepository struct {
	db *sqlx.DB
}

// NewSolveRunRepository constructs the repository.
func NewSolveRunRepository(db *sqlx.DB) *SolveRunRepository {
	return &SolveRunRepository{db: db}
}

// Create inserts a new solve run, assigning it an id if one isn't set.
func (r *SolveRunRepository) Create(ctx context.Context, run *SolveRun) error {
	if run == nil {
		return fmt.Errorf("solve run payload is nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	const insertQuery = `
INSERT INTO solve_runs (id, fingerprint, feasible, objective_value, output_json, wall_time_ms, created_at)
VALUES (:id, :fingerprint, :feasible, :objective_value, :output_json, :wall_time_ms, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, insertQuery, run); err != nil {
		return fmt.Errorf("insert solve run: %w", err)
	}
	return nil
}

// FindLatestByFingerprint returns the most recent run for a given demand
// fingerprint, or sql.ErrNoRows if none exists.
func (r *SolveRunRepository) FindLatestByFingerprint(ctx context.Context, fingerprint string) (*SolveRun, error) {
	const query = `SELECT id, fingerprint, feasible, objective_value, output_json, wall_time_ms, created_at
FROM solve_runs WHERE fingerprint = $1 ORDER BY created_at DESC LIMIT 1`
	var run SolveRun
	if err := r.db.GetContext(ctx, &run, query, fingerprint); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRecent returns the most recent solve runs, newest first.
func (r *SolveRunRepository) ListRecent(ctx context.Context, limit int) ([]SolveRun, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `SELECT id, fingerprint, feasible, objective_value, output_json, wall_time_ms, created_at
FROM solve_runs ORDER BY created_at DESC LIMIT $1`
	var runs []SolveRun
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("list solve runs: %w", err)
	}
	return runs, nil
}

// Delete removes a solve run by id.
func (r *SolveRunRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM solve_runs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete solve run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("solve run rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarshalOutput is a small helper for callers building a SolveRun from an
// arbitrary JSON-serializable output payload.
func MarshalOutput(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
