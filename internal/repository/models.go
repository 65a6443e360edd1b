package repository

import (
	"time"

	"github.com/mod-analysis/pkg/model"
)

// SolverRun represents the solver_run table.
type SolverRun struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Kind       int       `gorm:"column:kind;index"`
	InputFile  string    `gorm:"column:input_file;type:varchar(512)"`
	Format     string    `gorm:"column:format;type:varchar(32)"`
	Records    int       `gorm:"column:records"`
	Status     int       `gorm:"column:status"`
	StatusInfo string    `gorm:"column:status_info;type:text"`
	DurationMs int64     `gorm:"column:duration_ms"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

// TableName returns the table name for SolverRun.
func (SolverRun) TableName() string {
	return "solver_run"
}

// ToModel converts SolverRun to model.Run.
func (r *SolverRun) ToModel() *model.Run {
	return &model.Run{
		ID:         r.ID,
		Kind:       model.RunKind(r.Kind),
		InputFile:  r.InputFile,
		Format:     r.Format,
		Records:    r.Records,
		Status:     model.RunStatus(r.Status),
		StatusInfo: r.StatusInfo,
		DurationMs: r.DurationMs,
		CreatedAt:  r.CreatedAt,
	}
}

// newSolverRun converts model.Run to its table representation.
func newSolverRun(run *model.Run) *SolverRun {
	return &SolverRun{
		ID:         run.ID,
		Kind:       int(run.Kind),
		InputFile:  run.InputFile,
		Format:     run.Format,
		Records:    run.Records,
		Status:     int(run.Status),
		StatusInfo: run.StatusInfo,
		DurationMs: run.DurationMs,
		CreatedAt:  run.CreatedAt,
	}
}
