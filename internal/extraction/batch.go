package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mkravchenko/knowledge-extractor/internal/document"
)

// Summary describes a completed batch run.
type Summary struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Warnings  int           `json:"warnings"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Batch runs an extraction engine over a document set, producing exactly one
// result per document in input order. Individual failures never abort the
// batch; they surface as fallback records.
type Batch struct {
	engine  *Engine
	workers int
	verbose bool
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithWorkers bounds the number of documents extracted concurrently.
// Values below 2 keep the batch sequential.
func WithWorkers(n int) BatchOption {
	return func(b *Batch) { b.workers = n }
}

// WithBatchVerbose enables per-document progress output.
func WithBatchVerbose(verbose bool) BatchOption {
	return func(b *Batch) { b.verbose = verbose }
}

// NewBatch creates a batch runner around an extraction engine.
func NewBatch(engine *Engine, opts ...BatchOption) *Batch {
	b := &Batch{engine: engine, workers: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run extracts every document and returns the results in input order along
// with a run summary. A cancelled context stops scheduling new documents;
// documents never scheduled still get a stamped fallback result, so every
// slot carries its document's metadata.
func (b *Batch) Run(ctx context.Context, docs []document.Record) ([]Result, Summary) {
	start := time.Now()
	results := make([]Result, len(docs))

	if b.workers > 1 {
		g := new(errgroup.Group)
		g.SetLimit(b.workers)
		for i := range docs {
			if ctx.Err() != nil {
				break
			}
			i := i
			g.Go(func() error {
				results[i] = b.extractOne(ctx, i, len(docs), docs[i])
				return nil
			})
		}
		_ = g.Wait() // workers never return errors
	} else {
		for i := range docs {
			if ctx.Err() != nil {
				break
			}
			results[i] = b.extractOne(ctx, i, len(docs), docs[i])
		}
	}

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Fields == nil {
				results[i] = b.engine.fallback(metadataFor(docs[i]), fmt.Sprintf("batch cancelled: %v", err))
			}
		}
	}

	summary := Summary{
		RunID:   uuid.New().String(),
		Total:   len(docs),
		Elapsed: time.Since(start),
	}
	for _, result := range results {
		if result.Fallback {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		if result.Warning != "" {
			summary.Warnings++
		}
	}

	return results, summary
}

func (b *Batch) extractOne(ctx context.Context, i, total int, doc document.Record) Result {
	if b.verbose {
		fmt.Printf("→ Extracting document %d/%d: %s\n", i+1, total, doc.FileName)
	}
	return b.engine.Extract(ctx, doc)
}
