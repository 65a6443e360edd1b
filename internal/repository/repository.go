// Package repository provides database abstraction for the mod-analysis service.
package repository

import (
	"context"
	"time"

	"github.com/mod-analysis/pkg/model"
)

// RunRepository defines the interface for run-history database operations.
type RunRepository interface {
	// SaveRun persists a finished run and fills in its assigned ID.
	SaveRun(ctx context.Context, run *model.Run) error

	// GetRunByID retrieves a run by its ID.
	GetRunByID(ctx context.Context, id int64) (*model.Run, error)

	// ListRuns retrieves the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*model.Run, error)

	// ListRunsByKind retrieves the most recent runs of one kind, newest first.
	ListRunsByKind(ctx context.Context, kind model.RunKind, limit int) ([]*model.Run, error)

	// DeleteRunsBefore removes runs created before cutoff and returns how
	// many were removed.
	DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
