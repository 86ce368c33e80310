package extraction

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mkravchenko/knowledge-extractor/internal/document"
	"github.com/mkravchenko/knowledge-extractor/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoProvider answers with the filename found in the prompt, so tests can
// verify result-to-document pairing. Safe for concurrent use.
type echoProvider struct {
	failFor string
}

func (e *echoProvider) Name() string { return "echo" }

func (e *echoProvider) Complete(_ context.Context, p string, _ provider.Decoding) (string, error) {
	for _, line := range strings.Split(p, "\n") {
		if name, ok := strings.CutPrefix(line, "Filename: "); ok {
			if name == e.failFor {
				return "", fmt.Errorf("simulated failure for %s", name)
			}
			return fmt.Sprintf(`{"topic": %q}`, name), nil
		}
	}
	return "{}", nil
}

func (e *echoProvider) Close() error { return nil }

func batchDocs(n int) []document.Record {
	docs := make([]document.Record, n)
	for i := range docs {
		docs[i] = document.FromText(fmt.Sprintf("/docs/doc-%02d.txt", i), fmt.Sprintf("content %d", i))
	}
	return docs
}

func TestBatchRun_Sequential(t *testing.T) {
	engine := newTestEngine(t, &echoProvider{})
	batch := NewBatch(engine)

	docs := batchDocs(4)
	results, summary := batch.Run(context.Background(), docs)

	require.Len(t, results, 4)
	for i, result := range results {
		assert.Equal(t, docs[i].FileName, result.Fields["topic"], "result %d", i)
		assert.Equal(t, docs[i].FileName, result.Metadata.FileName)
	}

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 4, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.NotEmpty(t, summary.RunID)
}

func TestBatchRun_ParallelPreservesOrder(t *testing.T) {
	engine := newTestEngine(t, &echoProvider{})
	batch := NewBatch(engine, WithWorkers(4))

	docs := batchDocs(12)
	results, summary := batch.Run(context.Background(), docs)

	require.Len(t, results, 12)
	for i, result := range results {
		assert.Equal(t, docs[i].FileName, result.Fields["topic"], "result %d", i)
	}
	assert.Equal(t, 12, summary.Succeeded)
}

func TestBatchRun_FailureDoesNotAbortBatch(t *testing.T) {
	engine := newTestEngine(t, &echoProvider{failFor: "doc-01.txt"})
	batch := NewBatch(engine)

	docs := batchDocs(3)
	results, summary := batch.Run(context.Background(), docs)

	require.Len(t, results, 3)
	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed())
	assert.False(t, results[2].Failed())

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestBatchRun_CancelledStampsMetadata(t *testing.T) {
	engine := newTestEngine(t, &echoProvider{})
	batch := NewBatch(engine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := batchDocs(3)
	results, summary := batch.Run(ctx, docs)

	require.Len(t, results, 3)
	for i, result := range results {
		assert.True(t, result.Failed(), "result %d", i)
		assert.Equal(t, docs[i].FileName, result.Metadata.FileName, "result %d", i)
		assert.Contains(t, result.Metadata.ExtractionError, "cancelled", "result %d", i)
		assert.NotNil(t, result.Fields, "result %d", i)
	}

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Failed)
	assert.Equal(t, 0, summary.Succeeded)
}

func TestBatchRun_WarningsCounted(t *testing.T) {
	// The echo record misses required fields, so every document validates
	// with a warning but still succeeds.
	engine := newTestEngine(t, &stubProvider{response: `{"mood": "Productive", "attendee_count": 3}`})
	batch := NewBatch(engine)

	_, summary := batch.Run(context.Background(), batchDocs(2))

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 2, summary.Warnings)
}

func TestBatchRun_Empty(t *testing.T) {
	engine := newTestEngine(t, &echoProvider{})
	batch := NewBatch(engine)

	results, summary := batch.Run(context.Background(), nil)

	assert.Empty(t, results)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Succeeded)
}

func TestBatchRun_UniqueRunIDs(t *testing.T) {
	engine := newTestEngine(t, &echoProvider{})
	batch := NewBatch(engine)

	_, first := batch.Run(context.Background(), batchDocs(1))
	_, second := batch.Run(context.Background(), batchDocs(1))

	assert.NotEqual(t, first.RunID, second.RunID)
}
