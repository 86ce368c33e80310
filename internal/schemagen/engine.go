// Package schemagen establishes the schema artifact for a field
// configuration, preferring a generatively authored artifact and falling back
// to the deterministic compiler rendering when the generative path fails.
package schemagen

import (
	"context"
	"fmt"

	"github.com/mkravchenko/knowledge-extractor/internal/fieldconfig"
	"github.com/mkravchenko/knowledge-extractor/internal/prompt"
	"github.com/mkravchenko/knowledge-extractor/internal/provider"
	"github.com/mkravchenko/knowledge-extractor/internal/schema"
)

// State is the engine's position in the generation flow. It is observable
// after Generate returns, mainly so callers can report whether the artifact
// came from the generative path or the deterministic fallback.
type State string

const (
	StateIdle             State = "idle"
	StateRequesting       State = "requesting"
	StateCleaning         State = "cleaning"
	StateValidating       State = "validating"
	StateFallbackBuilding State = "fallback-building"
	StateMaterialized     State = "materialized"
	StateFailed           State = "failed"
)

// Engine runs schema generation. A nil provider skips the generative path
// entirely and always builds the deterministic artifact.
type Engine struct {
	provider     provider.Provider
	decoding     provider.Decoding
	verbose      bool
	state        State
	usedFallback bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxOutputTokens caps the generative response size.
func WithMaxOutputTokens(n int) Option {
	return func(e *Engine) { e.decoding.MaxOutputTokens = n }
}

// WithVerbose enables step-by-step progress output.
func WithVerbose(verbose bool) Option {
	return func(e *Engine) { e.verbose = verbose }
}

// NewEngine creates a schema generation engine backed by the given provider.
func NewEngine(p provider.Provider, opts ...Option) *Engine {
	e := &Engine{provider: p, state: StateIdle}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State reports where the last Generate call ended.
func (e *Engine) State() State { return e.state }

// UsedFallback reports whether the last Generate call served the
// deterministic artifact instead of a generative one.
func (e *Engine) UsedFallback() bool { return e.usedFallback }

// Generate establishes the schema for a field configuration. It returns the
// compiled schema alongside the artifact text that was materialized. The
// configuration is compiled first; a configuration error aborts before any
// provider call. A generative failure of any kind degrades to the
// deterministic artifact, which also acts as the structural reference for
// downstream validation. Only a fallback that itself fails to materialize is
// fatal.
func (e *Engine) Generate(ctx context.Context, cfg *fieldconfig.FieldConfig) (*schema.Schema, string, error) {
	e.usedFallback = false

	compiled, err := schema.Compile(cfg)
	if err != nil {
		e.state = StateFailed
		return nil, "", err
	}

	artifact, genErr := e.generateArtifact(ctx, cfg)
	if genErr == nil {
		e.state = StateValidating
		_, merr := schema.Materialize(artifact, cfg.MainModelName)
		if merr == nil {
			e.state = StateMaterialized
			return compiled, artifact, nil
		}
		genErr = merr
	}

	if e.verbose && e.provider != nil {
		fmt.Printf("⚠ Generative schema rejected, building deterministic artifact: %v\n", genErr)
	}

	e.state = StateFallbackBuilding
	fallback, err := schema.RenderArtifact(compiled)
	if err != nil {
		e.state = StateFailed
		return nil, "", &GenerationError{Message: "deterministic artifact could not be rendered", Cause: err}
	}
	if _, err := schema.Materialize(fallback, cfg.MainModelName); err != nil {
		e.state = StateFailed
		return nil, "", &GenerationError{Message: "deterministic artifact failed to materialize", Cause: err}
	}

	e.state = StateMaterialized
	e.usedFallback = true
	return compiled, fallback, nil
}

// generateArtifact runs the generative path: request, clean, syntax check.
func (e *Engine) generateArtifact(ctx context.Context, cfg *fieldconfig.FieldConfig) (string, error) {
	if e.provider == nil {
		return "", fmt.Errorf("no generative provider configured")
	}

	genPrompt, err := prompt.SchemaGenerationPrompt(cfg)
	if err != nil {
		return "", err
	}

	e.state = StateRequesting
	if e.verbose {
		fmt.Printf("→ Requesting schema from %s...\n", e.provider.Name())
	}
	raw, err := e.provider.Complete(ctx, genPrompt, e.decoding)
	if err != nil {
		return "", err
	}

	e.state = StateCleaning
	cleaned := CleanArtifact(raw)
	if cleaned == "" {
		return "", fmt.Errorf("response contained no artifact content")
	}
	if err := schema.CheckArtifact(cleaned); err != nil {
		return "", err
	}

	return cleaned, nil
}
