package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mod-analysis/internal/parser/vdata"
	"github.com/mod-analysis/pkg/config"
	apperrors "github.com/mod-analysis/pkg/errors"
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

func newTestService(t *testing.T) *Service {
	cfg := &config.Config{
		Decoder: config.DecoderConfig{
			OutputDir: filepath.Join(t.TempDir(), "out"),
		},
		Collection: config.CollectionConfig{Prefix: "favorites"},
		Database: config.DatabaseConfig{
			Type: "sqlite",
			Path: filepath.Join(t.TempDir(), "runs.db"),
		},
		Storage: config.StorageConfig{Type: "memory"},
	}

	svc, err := New(cfg, &utils.NullLogger{})
	require.NoError(t, err)
	require.NoError(t, svc.Initialize(context.Background()))
	t.Cleanup(func() { _ = svc.Stop() })

	return svc
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestService_DecodeFile_Binary(t *testing.T) {
	svc := newTestService(t)

	state := &model.CharState{
		CharID: 10001,
		Name:   "开拓者",
		Level:  80,
		Mod: &model.ModState{
			ModInfos: []model.ModInfo{
				{ConfigID: 1001, Quality: 3, Parts: []model.ModPart{{Name: "智力加持", Value: 12}}},
			},
		},
	}
	path := writeTempFile(t, "char.bin", vdata.MarshalCharState(state))

	report, err := svc.DecodeFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, string(vdata.FormatBinaryDirect), report.Format)
	assert.Equal(t, state, report.State)

	// Decoded JSON lands in the output directory under the input name.
	outPath := filepath.Join(svc.config.Decoder.OutputDir, "char.json")
	_, err = os.Stat(outPath)
	assert.NoError(t, err)
}

func TestService_DecodeFile_JSON(t *testing.T) {
	svc := newTestService(t)

	path := writeTempFile(t, "char.json", []byte(`{"charId":7,"level":12}`))

	report, err := svc.DecodeFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, string(vdata.FormatJSONDirect), report.Format)
	assert.Equal(t, int64(7), report.State.CharID)
}

func TestService_DecodeFile_FailureRecorded(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	path := writeTempFile(t, "garbage.bin", []byte{0xff, 0xfe, 0x01})

	_, err := svc.DecodeFile(ctx, path)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotText(err))

	runs, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunStatusFailed, runs[0].Status)
	assert.Equal(t, model.RunKindDecode, runs[0].Kind)
}

func TestService_DecodeFile_MissingInput(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.DecodeFile(context.Background(), "/nonexistent/blob.bin")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetErrorCode(err))
}

func TestService_DecodeFile_SizeLimit(t *testing.T) {
	svc := newTestService(t)
	svc.config.Decoder.MaxInputBytes = 4

	path := writeTempFile(t, "big.bin", []byte("0123456789"))

	_, err := svc.DecodeFile(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetErrorCode(err))
}

func TestService_DecodeFiles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	good := writeTempFile(t, "good.json", []byte(`{"charId":7}`))
	bad := writeTempFile(t, "bad.bin", []byte{0xff, 0xfe, 0x01})

	results := svc.DecodeFiles(ctx, []string{good, bad})
	require.Len(t, results, 2)

	// Results come back in input order.
	assert.Equal(t, good, results[0].Path)
	require.NoError(t, results[0].Err)
	assert.Equal(t, int64(7), results[0].Report.State.CharID)

	assert.Equal(t, bad, results[1].Path)
	assert.Error(t, results[1].Err)

	// Both runs landed in the history.
	runs, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestService_PruneHistory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	old := &model.Run{
		Kind:      model.RunKindDecode,
		InputFile: "old.bin",
		Status:    model.RunStatusOK,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, svc.db.Runs.SaveRun(ctx, old))

	recent := writeTempFile(t, "recent.json", []byte(`{"charId":7}`))
	_, err := svc.DecodeFile(ctx, recent)
	require.NoError(t, err)

	deleted, err := svc.PruneHistory(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	runs, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, recent, runs[0].InputFile)
}

func TestService_ParseLogFile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	text := strings.Join([]string{
		"==================================================",
		"模组搭配优化 - 示例",
		"=== 第1名搭配 ===",
		"总属性值: 120",
		"战斗力: 9999",
		"模组列表:",
		"帽子A",
		"手套B",
		"属性分布:",
		"智力加持: 12",
	}, "\n")
	path := writeTempFile(t, "solver.log", []byte(text))

	report, err := svc.ParseLogFile(ctx, path)
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	assert.Equal(t, 1, report.Records[0].Rank)
	assert.Equal(t, []string{"帽子A", "手套B"}, report.Records[0].Modules)

	runs, err := svc.HistoryByKind(ctx, model.RunKindParse, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Records)
	assert.Equal(t, model.RunStatusOK, runs[0].Status)
}

func TestService_ParseLogFile_Missing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ParseLogFile(context.Background(), "/nonexistent/solver.log")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetErrorCode(err))
}

func TestService_Favorites(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record := model.CombinationRecord{
		Rank:    1,
		Modules: []string{"帽子A"},
	}

	state, err := svc.ToggleFavorite(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, "favorited", string(state))

	fav, err := svc.IsFavorite(ctx, record)
	require.NoError(t, err)
	assert.True(t, fav)

	records, err := svc.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	state, err = svc.ToggleFavorite(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, "unfavorited", string(state))
}

func TestService_History_NewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := writeTempFile(t, "a.json", []byte(`{"charId":1}`))
	second := writeTempFile(t, "b.json", []byte(`{"charId":2}`))

	_, err := svc.DecodeFile(ctx, first)
	require.NoError(t, err)
	_, err = svc.DecodeFile(ctx, second)
	require.NoError(t, err)

	runs, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].InputFile)
	assert.Equal(t, first, runs[1].InputFile)
}

func TestService_SummaryAndHealth(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	path := writeTempFile(t, "char.json", []byte(`{"charId":7}`))
	report, err := svc.DecodeFile(ctx, path)
	require.NoError(t, err)

	summary := svc.Summary(report)
	assert.Equal(t, "decode", summary["kind"])

	svc.PrintReport(report)

	assert.NoError(t, svc.HealthCheck(ctx))
}
