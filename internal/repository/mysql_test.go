package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mod-analysis/pkg/model"
)

func TestMySQLRunRepository_SaveRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	t.Run("SaveRun_Success", func(t *testing.T) {
		run := &model.Run{
			Kind:       model.RunKindDecode,
			InputFile:  "char.bin",
			Format:     "binary_direct",
			Records:    1,
			Status:     model.RunStatusOK,
			DurationMs: 5,
		}

		mock.ExpectExec("INSERT INTO solver_run").
			WithArgs(
				int(run.Kind), run.InputFile, run.Format, run.Records,
				int(run.Status), run.StatusInfo, run.DurationMs, sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(7, 1))

		err := repo.SaveRun(context.Background(), run)
		require.NoError(t, err)
		assert.Equal(t, int64(7), run.ID)
		assert.False(t, run.CreatedAt.IsZero())
	})
}

func TestMySQLRunRepository_GetRunByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	t.Run("GetRunByID_Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "kind", "input_file", "format",
			"records", "status", "status_info", "duration_ms", "created_at",
		}).AddRow(
			int64(1), int(model.RunKindParse), "solver.log", "",
			5, int(model.RunStatusOK), "", int64(20), time.Now(),
		)

		mock.ExpectQuery("SELECT id, kind").WithArgs(int64(1)).WillReturnRows(rows)

		run, err := repo.GetRunByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, model.RunKindParse, run.Kind)
		assert.Equal(t, 5, run.Records)
	})

	t.Run("GetRunByID_NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, kind").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "kind", "input_file", "format",
				"records", "status", "status_info", "duration_ms", "created_at",
			}))

		run, err := repo.GetRunByID(context.Background(), 99)
		assert.Error(t, err)
		assert.Nil(t, run)
		assert.Contains(t, err.Error(), "run not found")
	})
}

func TestMySQLRunRepository_ListRuns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "kind", "input_file", "format",
		"records", "status", "status_info", "duration_ms", "created_at",
	}).AddRow(
		int64(2), int(model.RunKindDecode), "b.bin", "json_direct",
		1, int(model.RunStatusOK), "", int64(3), time.Now(),
	).AddRow(
		int64(1), int(model.RunKindDecode), "a.bin", "base64",
		1, int(model.RunStatusOK), "", int64(4), time.Now(),
	)

	mock.ExpectQuery("SELECT id, kind").WithArgs(10).WillReturnRows(rows)

	runs, err := repo.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b.bin", runs[0].InputFile)
	assert.Equal(t, "a.bin", runs[1].InputFile)
}

func TestMySQLRunRepository_ListRunsByKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "kind", "input_file", "format",
		"records", "status", "status_info", "duration_ms", "created_at",
	}).AddRow(
		int64(3), int(model.RunKindParse), "run.log", "",
		8, int(model.RunStatusOK), "", int64(15), time.Now(),
	)

	mock.ExpectQuery("SELECT id, kind").
		WithArgs(int(model.RunKindParse), 5).
		WillReturnRows(rows)

	runs, err := repo.ListRunsByKind(context.Background(), model.RunKindParse, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 8, runs[0].Records)
}

func TestMySQLRunRepository_DeleteRunsBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	cutoff := time.Now().Add(-24 * time.Hour)
	mock.ExpectExec("DELETE FROM solver_run").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteRunsBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
