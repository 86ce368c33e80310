package main

import (
	"os"

	"github.com/mkravchenko/knowledge-extractor/internal/config"
	"github.com/mkravchenko/knowledge-extractor/internal/provider"
)

// buildProviderOptions maps resolved CLI configuration and environment
// variables onto provider options. API keys come from the environment only;
// they never live in config files or flags.
func buildProviderOptions(cfg config.Config) provider.Options {
	return provider.Options{
		SchemaBackend:     provider.Backend(cfg.SchemaBackend),
		ExtractionBackend: provider.Backend(cfg.ExtractionBackend),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		UseAzure:          cfg.UseAzure,
		AzureAPIKey:       os.Getenv("AZURE_OPENAI_API_KEY"),
		AzureModel:        cfg.AzureDeployment,
		AzureConfig: provider.AzureConfig{
			Endpoint:   firstNonEmpty(cfg.AzureEndpoint, os.Getenv("AZURE_OPENAI_ENDPOINT")),
			APIVersion: firstNonEmpty(cfg.AzureAPIVersion, os.Getenv("AZURE_OPENAI_API_VERSION")),
		},
	}
}

// withModel returns a copy of the options with the model override applied to
// the given backend. Each pipeline stage applies its own override so the same
// backend can serve both stages with different models.
func withModel(o provider.Options, backend provider.Backend, model string) provider.Options {
	if model == "" {
		return o
	}
	switch backend {
	case provider.BackendAnthropic:
		o.AnthropicModel = model
	case provider.BackendOpenAI:
		o.OpenAIModel = model
	case provider.BackendGemini:
		o.GeminiModel = model
	}
	return o
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
