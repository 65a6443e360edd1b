// Package service provides the main application service that integrates all components.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/mod-analysis/internal/collection"
	"github.com/mod-analysis/internal/formatter"
	"github.com/mod-analysis/internal/parser/solverlog"
	"github.com/mod-analysis/internal/parser/vdata"
	"github.com/mod-analysis/internal/repository"
	"github.com/mod-analysis/internal/storage"
	"github.com/mod-analysis/pkg/config"
	apperrors "github.com/mod-analysis/pkg/errors"
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/parallel"
	"github.com/mod-analysis/pkg/utils"
	"github.com/mod-analysis/pkg/writer"
)

const tracerName = "mod-analysis/service"

// Service is the main application service.
type Service struct {
	config *config.Config
	logger utils.Logger
	clock  utils.Clock

	db        *repository.Repositories
	storage   storage.Storage
	favorites *collection.Store

	decoder    *vdata.Decoder
	parser     *solverlog.Parser
	formatters *formatter.Registry
}

// New creates a new Service instance.
func New(cfg *config.Config, logger utils.Logger) (*Service, error) {
	if logger == nil {
		logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}

	return &Service{
		config:     cfg,
		logger:     logger,
		clock:      utils.NewRealClock(),
		decoder:    vdata.NewDecoder(vdata.WithLogger(logger)),
		parser:     solverlog.NewParser(solverlog.WithLogger(logger)),
		formatters: formatter.NewRegistry(),
	}, nil
}

// Initialize initializes all service components.
func (s *Service) Initialize(ctx context.Context) error {
	s.logger.Info("Initializing service components...")

	if err := s.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := s.initStorage(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	s.favorites = collection.NewStore(s.storage,
		collection.WithPrefix(s.config.Collection.Prefix),
		collection.WithLogger(s.logger),
	)

	s.logger.Info("Service components initialized successfully")
	return nil
}

// initDatabase initializes the database connection and repositories.
func (s *Service) initDatabase() error {
	s.logger.Info("Connecting to database (%s)...", s.config.Database.Type)

	gormDB, err := repository.NewGormDB(&s.config.Database)
	if err != nil {
		return err
	}

	s.db = repository.NewRepositories(gormDB, s.config.Database.Type)
	s.logger.Info("Database connection established")

	return nil
}

// initStorage initializes the object storage.
func (s *Service) initStorage() error {
	s.logger.Info("Initializing storage (%s)...", s.config.Storage.Type)

	store, err := storage.NewStorage(&s.config.Storage)
	if err != nil {
		return err
	}

	s.storage = store
	s.logger.Info("Storage initialized")

	return nil
}

// DecodeFile reads a character-state blob from path, decodes it through the
// format cascade, optionally writes the decoded JSON to the configured output
// directory, and records the run in the history.
func (s *Service) DecodeFile(ctx context.Context, path string) (*formatter.Report, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "service.DecodeFile")
	defer span.End()

	run := &model.Run{
		Kind:      model.RunKindDecode,
		InputFile: path,
	}

	data, err := s.readInput(path)
	if err != nil {
		s.finishRun(ctx, run, err)
		return nil, err
	}

	start := s.clock.Now()
	state, format, err := s.decoder.Decode(data)
	run.DurationMs = s.clock.Since(start).Milliseconds()
	run.Format = string(format)

	if err != nil {
		span.RecordError(err)
		s.finishRun(ctx, run, err)
		return nil, err
	}

	run.Records = 1
	s.finishRun(ctx, run, nil)

	if s.config.Decoder.OutputDir != "" {
		if err := s.writeDecoded(path, state); err != nil {
			s.logger.Warn("failed to write decoded output: %v", err)
		}
	}

	return &formatter.Report{
		Kind:      model.RunKindDecode,
		InputFile: path,
		Format:    string(format),
		State:     state,
	}, nil
}

// BatchResult pairs one input path with its decode outcome.
type BatchResult struct {
	Path   string
	Report *formatter.Report
	Err    error
}

// DecodeFiles decodes several blob files concurrently. Each file is decoded
// and recorded independently; one bad input does not fail the batch.
func (s *Service) DecodeFiles(ctx context.Context, paths []string) []BatchResult {
	pool := parallel.NewWorkerPool[string, *formatter.Report](parallel.DefaultPoolConfig())
	results := pool.ExecuteFunc(ctx, paths, func(ctx context.Context, path string) (*formatter.Report, error) {
		return s.DecodeFile(ctx, path)
	})

	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{Path: r.Input, Report: r.Result, Err: r.Error}
	}
	return out
}

// ParseLogFile parses a solver log file into combination records and records
// the run in the history.
func (s *Service) ParseLogFile(ctx context.Context, path string) (*formatter.Report, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "service.ParseLogFile")
	defer span.End()

	run := &model.Run{
		Kind:      model.RunKindParse,
		InputFile: path,
	}

	if _, err := os.Stat(path); err != nil {
		wrapped := apperrors.Wrap(apperrors.CodeInvalidInput, "cannot read log file", err)
		span.RecordError(wrapped)
		s.finishRun(ctx, run, wrapped)
		return nil, wrapped
	}

	start := s.clock.Now()
	records := s.parser.ParseFile(path)
	run.DurationMs = s.clock.Since(start).Milliseconds()
	run.Records = len(records)

	s.finishRun(ctx, run, nil)

	return &formatter.Report{
		Kind:      model.RunKindParse,
		InputFile: path,
		Records:   records,
	}, nil
}

// ToggleFavorite flips the favorite state of a combination record.
func (s *Service) ToggleFavorite(ctx context.Context, record model.CombinationRecord) (collection.State, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "service.ToggleFavorite")
	defer span.End()

	return s.favorites.Toggle(ctx, record)
}

// IsFavorite reports whether a combination record is currently favorited.
func (s *Service) IsFavorite(ctx context.Context, record model.CombinationRecord) (bool, error) {
	return s.favorites.Contains(ctx, record)
}

// ListFavorites returns all favorited combination records.
func (s *Service) ListFavorites(ctx context.Context) ([]model.CombinationRecord, error) {
	return s.favorites.ListAll(ctx)
}

// History returns the most recent runs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*model.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.db.Runs.ListRuns(ctx, limit)
}

// HistoryByKind returns the most recent runs of one kind, newest first.
func (s *Service) HistoryByKind(ctx context.Context, kind model.RunKind, limit int) ([]*model.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.db.Runs.ListRunsByKind(ctx, kind, limit)
}

// PruneHistory deletes runs older than the cutoff and returns how many were
// removed.
func (s *Service) PruneHistory(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.clock.Now().Add(-olderThan)
	return s.db.Runs.DeleteRunsBefore(ctx, cutoff)
}

// PrintReport renders a report through the formatter registry.
func (s *Service) PrintReport(report *formatter.Report) {
	s.formatters.Format(report, s.logger)
}

// Summary returns the serializable summary of a report.
func (s *Service) Summary(report *formatter.Report) map[string]interface{} {
	return s.formatters.FormatSummary(report)
}

// Stop stops the service gracefully.
func (s *Service) Stop() error {
	s.logger.Info("Stopping service...")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection: %v", err)
		}
	}

	s.logger.Info("Service stopped")
	return nil
}

// HealthCheck performs a health check on the service.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
	}
	return nil
}

// readInput reads a blob file, enforcing the configured size limit.
func (s *Service) readInput(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "cannot read input file", err)
	}

	if max := s.config.Decoder.MaxInputBytes; max > 0 && info.Size() > max {
		return nil, apperrors.New(apperrors.CodeInvalidInput,
			fmt.Sprintf("input file exceeds %d bytes: %s", max, path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "cannot read input file", err)
	}
	return data, nil
}

// writeDecoded writes the decoded state as pretty JSON next to the input name.
func (s *Service) writeDecoded(inputPath string, state *model.CharState) error {
	if err := s.config.EnsureOutputDir(); err != nil {
		return err
	}

	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	outPath := filepath.Join(s.config.Decoder.OutputDir, name)

	w := writer.NewPrettyJSONWriter[*model.CharState]()
	if err := w.WriteToFile(state, outPath); err != nil {
		return err
	}

	s.logger.Info("Decoded output written to %s", outPath)
	return nil
}

// finishRun stamps the run status and saves it. History persistence is
// best-effort: a failed save is logged, not surfaced to the caller.
func (s *Service) finishRun(ctx context.Context, run *model.Run, runErr error) {
	if runErr != nil {
		run.Status = model.RunStatusFailed
		run.StatusInfo = apperrors.GetErrorMessage(runErr)
	} else {
		run.Status = model.RunStatusOK
	}

	if s.db == nil {
		return
	}
	if err := s.db.Runs.SaveRun(ctx, run); err != nil {
		s.logger.Warn("failed to record run: %v", err)
	}
}
