package app

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mmrzaf/ddlgen/internal/ddl"
	"github.com/mmrzaf/ddlgen/internal/domain"
	"github.com/mmrzaf/ddlgen/internal/exec"
	"github.com/mmrzaf/ddlgen/internal/hashing"
	"github.com/mmrzaf/ddlgen/internal/infra/targets"
	"github.com/mmrzaf/ddlgen/internal/infra/targets/csv"
	"github.com/mmrzaf/ddlgen/internal/logging"
	"github.com/mmrzaf/ddlgen/internal/registry"
	"github.com/mmrzaf/ddlgen/internal/validation"
)

// RunService drives one pass of the pipeline: read, flatten, parse, resolve,
// generate, write.
type RunService struct {
	types     *registry.TypeRegistry
	validator *validation.Validator
	logger    *logging.Logger
	newTarget func(*domain.TargetConfig) (exec.Target, error)
}

func NewRunService(types *registry.TypeRegistry, logger *logging.Logger) *RunService {
	return &RunService{
		types:     types,
		validator: validation.NewValidator(),
		logger:    logger,
		newTarget: buildTarget,
	}
}

// LoadTable reads a statement file and resolves it into a generation plan.
// Every column is resolved before this returns, so an unknown type fails the
// run before any row is generated.
func (s *RunService) LoadTable(path string) (*domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.IOError{Op: "read", Path: path, Err: err}
	}

	schema, err := ddl.Parse(ddl.Flatten(string(data)))
	if err != nil {
		return nil, err
	}

	return s.types.ResolveSchema(schema)
}

func (s *RunService) Run(ctx context.Context, cfg *domain.RunConfig) (*domain.RunStats, error) {
	if err := s.validator.ValidateRunConfig(cfg); err != nil {
		return nil, err
	}

	started := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With(map[string]any{"run_id": runID})

	table, err := s.LoadTable(cfg.InputPath)
	if err != nil {
		logger.Errorw("schema.failed", map[string]any{"input": cfg.InputPath, "error": err.Error()})
		return nil, err
	}

	schemaHash, err := hashing.HashTable(table)
	if err != nil {
		return nil, fmt.Errorf("failed to hash schema: %w", err)
	}

	var target exec.Target
	if cfg.Target != nil {
		if err := s.validator.ValidateTableForTarget(table); err != nil {
			return nil, fmt.Errorf("table not loadable into %s: %w", cfg.Target.Kind, err)
		}
		target, err = s.newTarget(cfg.Target)
		if err != nil {
			return nil, err
		}
	}

	seed := generateSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	logger.Infow("run.started", map[string]any{
		"table":       table.Name,
		"columns":     len(table.Columns),
		"rows":        cfg.Rows,
		"seed":        seed,
		"workers":     cfg.Workers,
		"schema_hash": schemaHash,
	})

	executor := exec.NewExecutor(cfg.Workers, cfg.BatchSize)
	rows, err := executor.GenerateRows(ctx, table.Rules(), cfg.Rows, mrand.New(mrand.NewSource(seed)))
	if err != nil {
		logger.Errorw("rows.failed", map[string]any{"error": err.Error()})
		return nil, err
	}

	if target != nil {
		redacted := targets.RedactTarget(cfg.Target)
		if err := executor.Load(ctx, table, rows, target); err != nil {
			logger.Errorw("target.failed", map[string]any{"kind": redacted.Kind, "dsn": redacted.DSN, "error": err.Error()})
			return nil, err
		}
		logger.Infow("target.loaded", map[string]any{"kind": redacted.Kind, "dsn": redacted.DSN, "rows": len(rows)})
	}

	if err := csv.NewFileSink(cfg.OutputPath).Write(table.Header(), rows); err != nil {
		logger.Errorw("output.failed", map[string]any{"output": cfg.OutputPath, "error": err.Error()})
		return nil, err
	}

	stats := &domain.RunStats{
		RunID:           runID,
		TableName:       table.Name,
		SchemaHash:      schemaHash,
		Columns:         len(table.Columns),
		RowsGenerated:   int64(len(rows)),
		Seed:            seed,
		DurationSeconds: time.Since(started).Seconds(),
	}

	logger.Infow("run.completed", map[string]any{
		"table":            stats.TableName,
		"rows":             stats.RowsGenerated,
		"output":           cfg.OutputPath,
		"duration_seconds": stats.DurationSeconds,
	})

	return stats, nil
}

func generateSeed() int64 {
	var b [8]byte
	rand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}
