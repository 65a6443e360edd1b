package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mod-analysis/pkg/model"
	"gorm.io/gorm"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// SaveRun persists a finished run and fills in its assigned ID.
func (r *GormRunRepository) SaveRun(ctx context.Context, run *model.Run) error {
	record := newSolverRun(run)

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	run.ID = record.ID
	run.CreatedAt = record.CreatedAt
	return nil
}

// GetRunByID retrieves a run by its ID.
func (r *GormRunRepository) GetRunByID(ctx context.Context, id int64) (*model.Run, error) {
	var record SolverRun

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return record.ToModel(), nil
}

// ListRuns retrieves the most recent runs, newest first.
func (r *GormRunRepository) ListRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	var records []SolverRun

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	runs := make([]*model.Run, len(records))
	for i, rec := range records {
		runs[i] = rec.ToModel()
	}

	return runs, nil
}

// ListRunsByKind retrieves the most recent runs of one kind, newest first.
func (r *GormRunRepository) ListRunsByKind(ctx context.Context, kind model.RunKind, limit int) ([]*model.Run, error) {
	var records []SolverRun

	err := r.db.WithContext(ctx).
		Where("kind = ?", int(kind)).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	runs := make([]*model.Run, len(records))
	for i, rec := range records {
		runs[i] = rec.ToModel()
	}

	return runs, nil
}

// DeleteRunsBefore removes runs created before cutoff.
func (r *GormRunRepository) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&SolverRun{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", result.Error)
	}

	return result.RowsAffected, nil
}
