package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mod-analysis/pkg/model"
)

// MySQLRunRepository implements RunRepository for MySQL using database/sql
// directly. Deployments that already hold a *sql.DB pool use this instead of
// the GORM path.
type MySQLRunRepository struct {
	db *sql.DB
}

// NewMySQLRunRepository creates a new MySQLRunRepository.
func NewMySQLRunRepository(db *sql.DB) *MySQLRunRepository {
	return &MySQLRunRepository{db: db}
}

// SaveRun persists a finished run and fills in its assigned ID.
func (r *MySQLRunRepository) SaveRun(ctx context.Context, run *model.Run) error {
	query := `
		INSERT INTO solver_run (kind, input_file, format, records, status, status_info, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		int(run.Kind), run.InputFile, run.Format, run.Records,
		int(run.Status), run.StatusInfo, run.DurationMs, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted run id: %w", err)
	}

	run.ID = id
	run.CreatedAt = createdAt
	return nil
}

// GetRunByID retrieves a run by its ID.
func (r *MySQLRunRepository) GetRunByID(ctx context.Context, id int64) (*model.Run, error) {
	query := `
		SELECT id, kind, COALESCE(input_file, ''), COALESCE(format, ''),
			   records, status, COALESCE(status_info, ''), duration_ms, created_at
		FROM solver_run
		WHERE id = ?
	`

	run := &model.Run{}
	var kind, status int

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &kind, &run.InputFile, &run.Format,
		&run.Records, &status, &run.StatusInfo, &run.DurationMs, &run.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Kind = model.RunKind(kind)
	run.Status = model.RunStatus(status)
	return run, nil
}

// ListRuns retrieves the most recent runs, newest first.
func (r *MySQLRunRepository) ListRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	query := `
		SELECT id, kind, COALESCE(input_file, ''), COALESCE(format, ''),
			   records, status, COALESCE(status_info, ''), duration_ms, created_at
		FROM solver_run
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	return r.scanRuns(rows)
}

// ListRunsByKind retrieves the most recent runs of one kind, newest first.
func (r *MySQLRunRepository) ListRunsByKind(ctx context.Context, kind model.RunKind, limit int) ([]*model.Run, error) {
	query := `
		SELECT id, kind, COALESCE(input_file, ''), COALESCE(format, ''),
			   records, status, COALESCE(status_info, ''), duration_ms, created_at
		FROM solver_run
		WHERE kind = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, int(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	return r.scanRuns(rows)
}

// DeleteRunsBefore removes runs created before cutoff.
func (r *MySQLRunRepository) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM solver_run WHERE created_at < ?`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected, nil
}

// scanRuns scans multiple runs from rows.
func (r *MySQLRunRepository) scanRuns(rows *sql.Rows) ([]*model.Run, error) {
	var runs []*model.Run

	for rows.Next() {
		run := &model.Run{}
		var kind, status int

		err := rows.Scan(
			&run.ID, &kind, &run.InputFile, &run.Format,
			&run.Records, &status, &run.StatusInfo, &run.DurationMs, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		run.Kind = model.RunKind(kind)
		run.Status = model.RunStatus(status)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return runs, nil
}
