package provider

import (
	"context"
	"fmt"
)

// Options selects and configures the backends for one pipeline run. Schema
// generation and extraction may use different backends.
type Options struct {
	SchemaBackend     Backend
	ExtractionBackend Backend

	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	GeminiAPIKey    string
	GeminiModel     string

	// Azure enables alternate routing of the OpenAI backend through an
	// Azure endpoint.
	UseAzure     bool
	AzureAPIKey  string
	AzureConfig  AzureConfig
	AzureModel   string
}

// Validate checks backend names and known compatibility restrictions.
// The Anthropic backend cannot serve extraction while Azure routing is
// active; schema generation on Anthropic remains allowed.
func (o *Options) Validate() error {
	for _, backend := range []Backend{o.SchemaBackend, o.ExtractionBackend} {
		switch backend {
		case BackendAnthropic, BackendOpenAI, BackendGemini, "":
		default:
			return fmt.Errorf("unknown backend %q", backend)
		}
	}

	if o.UseAzure && o.ExtractionBackend == BackendAnthropic {
		return fmt.Errorf("the Anthropic backend is not supported with the Azure endpoint; select the OpenAI backend for extraction")
	}

	return nil
}

// New constructs a provider for the given backend.
func New(ctx context.Context, backend Backend, o Options) (Provider, error) {
	switch backend {
	case BackendAnthropic:
		return NewAnthropic(o.AnthropicAPIKey, o.AnthropicModel)
	case BackendOpenAI:
		if o.UseAzure {
			model := o.AzureModel
			if model == "" {
				model = o.OpenAIModel
			}
			return NewAzureOpenAI(o.AzureAPIKey, model, o.AzureConfig)
		}
		return NewOpenAI(o.OpenAIAPIKey, o.OpenAIModel)
	case BackendGemini:
		return NewGemini(ctx, o.GeminiAPIKey, o.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// NewForSchemaGeneration constructs the schema-generation provider after
// validating the combination.
func NewForSchemaGeneration(ctx context.Context, o Options) (Provider, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return New(ctx, o.SchemaBackend, o)
}

// NewForExtraction constructs the extraction provider after validating the
// combination.
func NewForExtraction(ctx context.Context, o Options) (Provider, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return New(ctx, o.ExtractionBackend, o)
}
