package exec

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/mmrzaf/ddlgen/internal/domain"
	"github.com/mmrzaf/ddlgen/internal/generators"
)

// Target is a database receiving generated rows.
type Target interface {
	Connect() error
	Close() error
	CreateTableIfNotExists(table *domain.Table) error
	InsertBatch(tableName string, columns []string, rows [][]interface{}) error
}

const DefaultBatchSize = 1000

type Executor struct {
	workers   int
	batchSize int
}

func NewExecutor(workers, batchSize int) *Executor {
	if workers < 1 {
		workers = 1
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Executor{workers: workers, batchSize: batchSize}
}

// GenerateRows produces n rows aligned to rules. Skip rules are omitted from
// every row. With a single worker all values are drawn from rng in row
// order; with more workers rows are split into contiguous chunks, each
// drawing from its own source seeded from rng in chunk order.
func (e *Executor) GenerateRows(ctx context.Context, rules []domain.GenerationRule, n int64, rng *rand.Rand) ([]domain.Row, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRowCount, n)
	}

	gens, err := generators.ForRules(rules)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, n)
	if e.workers == 1 || n < int64(e.workers) {
		if err := fillRows(ctx, rows, gens, rng); err != nil {
			return nil, err
		}
		return rows, nil
	}

	chunk := (n + int64(e.workers) - 1) / int64(e.workers)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for start := int64(0); start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		part := rows[start:end]
		chunkRng := rand.New(rand.NewSource(rng.Int63()))
		g.Go(func() error {
			return fillRows(ctx, part, gens, chunkRng)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func fillRows(ctx context.Context, rows []domain.Row, gens []generators.Generator, rng *rand.Rand) error {
	for i := range rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		row := make(domain.Row, len(gens))
		for j, g := range gens {
			v, err := g.Generate(rng)
			if err != nil {
				return fmt.Errorf("column %d: %w", j, err)
			}
			row[j] = v
		}
		rows[i] = row
	}
	return nil
}

// Load creates the table on the target if missing and inserts rows in
// batches.
func (e *Executor) Load(ctx context.Context, table *domain.Table, rows []domain.Row, target Target) error {
	if err := target.Connect(); err != nil {
		return fmt.Errorf("failed to connect to target: %w", err)
	}
	defer target.Close()

	if err := target.CreateTableIfNotExists(table); err != nil {
		return fmt.Errorf("failed to create table '%s': %w", table.Name, err)
	}

	columns := table.Header()
	batch := make([][]interface{}, 0, e.batchSize)
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch = append(batch, row)
		if len(batch) >= e.batchSize {
			if err := target.InsertBatch(table.Name, columns, batch); err != nil {
				return fmt.Errorf("failed to insert batch into '%s': %w", table.Name, err)
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := target.InsertBatch(table.Name, columns, batch); err != nil {
			return fmt.Errorf("failed to insert final batch into '%s': %w", table.Name, err)
		}
	}
	return nil
}
