// Package provider abstracts the hosted generative-model backends the pipeline
// can run against. Backend selection is a configuration-time choice of
// implementation, not runtime string sniffing.
package provider

import "context"

// Decoding bounds one completion call. Temperature is always pinned to the
// backend's minimum for reproducibility; only the output budget varies.
type Decoding struct {
	MaxOutputTokens int
}

// DefaultMaxOutputTokens bounds completions when the caller does not.
const DefaultMaxOutputTokens = 4000

// Provider executes a prompt against a hosted generative model and returns
// the raw response text.
type Provider interface {
	// Name identifies the backend for logging and result metadata.
	Name() string
	// Complete runs one deterministic completion within the given bounds.
	Complete(ctx context.Context, prompt string, d Decoding) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Backend names a provider implementation.
type Backend string

// Supported backends.
const (
	BackendAnthropic Backend = "anthropic"
	BackendOpenAI    Backend = "openai"
	BackendGemini    Backend = "gemini"
)

func (d Decoding) maxTokens() int {
	if d.MaxOutputTokens <= 0 {
		return DefaultMaxOutputTokens
	}
	return d.MaxOutputTokens
}
