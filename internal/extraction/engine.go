package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkravchenko/knowledge-extractor/internal/document"
	"github.com/mkravchenko/knowledge-extractor/internal/prompt"
	"github.com/mkravchenko/knowledge-extractor/internal/provider"
	"github.com/mkravchenko/knowledge-extractor/internal/schema"
)

// Engine extracts one structured record per document against a materialized
// schema. The extraction prompt is composed once and reused across documents;
// only the document section varies per call.
type Engine struct {
	provider     provider.Provider
	schema       *schema.Schema
	materialized *schema.Materialized
	pctx         prompt.Context
	rulePrompt   string
	decoding     provider.Decoding
	verbose      bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxOutputTokens caps the generative response size.
func WithMaxOutputTokens(n int) Option {
	return func(e *Engine) { e.decoding.MaxOutputTokens = n }
}

// WithVerbose enables per-document progress output.
func WithVerbose(verbose bool) Option {
	return func(e *Engine) { e.verbose = verbose }
}

// NewEngine creates an extraction engine. rulePrompt is the reusable
// extraction prompt with the schema artifact embedded; pctx carries the
// free-text extraction context rendered ahead of it.
func NewEngine(p provider.Provider, s *schema.Schema, m *schema.Materialized, pctx prompt.Context, rulePrompt string, opts ...Option) *Engine {
	e := &Engine{
		provider:     p,
		schema:       s,
		materialized: m,
		pctx:         pctx,
		rulePrompt:   rulePrompt,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs extraction for a single document. It never returns an error:
// a provider failure or an unparseable response degrades to the fallback
// record with the cause recorded in the metadata. Schema validation of a
// parsed record is advisory; mismatches are reported as a warning and the
// record is kept as returned.
func (e *Engine) Extract(ctx context.Context, doc document.Record) Result {
	meta := metadataFor(doc)

	docPrompt := prompt.DocumentPrompt(e.pctx, e.rulePrompt, doc)

	raw, err := e.provider.Complete(ctx, docPrompt, e.decoding)
	if err != nil {
		return e.fallback(meta, fmt.Sprintf("provider call failed: %v", err))
	}

	cleaned := cleanJSONBlock(raw)
	var record map[string]any
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return e.fallback(meta, fmt.Sprintf("response was not valid JSON: %v", err))
	}

	record = schema.CoerceRecord(e.schema, record)
	result := Result{Fields: record, Metadata: meta}

	if err := e.materialized.ValidateRecord(record); err != nil {
		result.Warning = err.Error()
		if e.verbose {
			fmt.Printf("⚠ %s: record does not conform to schema, keeping raw record\n", doc.FileName)
		}
	}

	return result
}

// metadataFor lifts a document's identity into result metadata.
func metadataFor(doc document.Record) Metadata {
	return Metadata{
		FileName:      doc.FileName,
		FilePath:      doc.FilePath,
		ContentLength: doc.ContentLength,
		WordCount:     doc.WordCount,
	}
}

// fallback builds a defaulted result carrying the failure cause.
func (e *Engine) fallback(meta Metadata, cause string) Result {
	if e.verbose {
		fmt.Printf("✗ %s: %s\n", meta.FileName, cause)
	}
	meta.ExtractionError = cause
	return Result{Fields: FallbackRecord(e.schema), Metadata: meta, Fallback: true}
}

// cleanJSONBlock strips markdown code fences and anything outside the
// outermost braces from a model response.
func cleanJSONBlock(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}

	return strings.TrimSpace(cleaned)
}
