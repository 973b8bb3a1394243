package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/internal/wordlist"
)

const defaultBatchSize = 500

// Result holds the outcome of one import.
type Result struct {
	Parsed   int
	Skipped  []wordlist.RowError
	Upserted int
	Duration time.Duration
}

// Pipeline parses one word list file and upserts it into the catalog.
type Pipeline struct {
	log  *slog.Logger
	repo WordBulkRepo
	cfg  Config
}

// NewPipeline creates a new Pipeline. repo may be nil for dry runs.
func NewPipeline(log *slog.Logger, repo WordBulkRepo, cfg Config) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Pipeline{
		log:  log.With("component", "seeder"),
		repo: repo,
		cfg:  cfg,
	}
}

// Run parses the configured file and writes the valid words. Invalid rows
// are reported in Result.Skipped and never abort the import.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.cfg.Path == "" {
		return nil, errors.New("seeder: word list path not configured")
	}
	start := time.Now()

	parsed, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("seeder: parse %s: %w", p.cfg.Path, err)
	}

	for _, rowErr := range parsed.Skipped {
		p.log.Warn("row skipped", slog.Int("row", rowErr.Row), slog.String("reason", rowErr.Reason))
	}
	p.log.Info("word list parsed",
		slog.String("path", p.cfg.Path),
		slog.Int("words", len(parsed.Words)),
		slog.Int("skipped", len(parsed.Skipped)),
	)

	result := &Result{Parsed: len(parsed.Words), Skipped: parsed.Skipped}

	if p.cfg.DryRun {
		result.Duration = time.Since(start)
		p.log.Info("dry run, nothing written")
		return result, nil
	}
	if p.repo == nil {
		return nil, errors.New("seeder: no word repository configured")
	}

	upserted, err := batchProcess(parsed.Words, p.cfg.BatchSize, func(batch []domain.Word) (int, error) {
		return p.repo.Upsert(ctx, batch)
	})
	result.Upserted = upserted
	result.Duration = time.Since(start)
	if err != nil {
		return result, fmt.Errorf("seeder: upsert words: %w", err)
	}

	p.log.Info("words imported",
		slog.Int("upserted", upserted),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

func (p *Pipeline) parse() (*wordlist.Result, error) {
	if p.cfg.Format == "" {
		return wordlist.ParseFile(p.cfg.Path)
	}

	f, err := os.Open(p.cfg.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return wordlist.Parse(f, wordlist.Format(p.cfg.Format))
}

// batchProcess splits items into chunks of batchSize and calls fn for each,
// summing the counts. It stops at the first error.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
