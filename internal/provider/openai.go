package provider

import (
	"context"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// defaultOpenAIModel is used when no model is configured.
const defaultOpenAIModel = "gpt-4.1-2025-04-14"

// extractionSystemPrompt frames every OpenAI completion.
const extractionSystemPrompt = "You are an expert data extraction specialist. " +
	"Extract structured information from documents according to the provided schema and return valid JSON."

// OpenAI is the GPT-backed provider, optionally routed through an Azure
// OpenAI endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
	azure  bool
}

// AzureConfig carries the alternate-routing settings for an Azure OpenAI
// endpoint.
type AzureConfig struct {
	Endpoint   string
	APIVersion string
}

// NewOpenAI creates a provider against the standard OpenAI endpoint.
func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, &Error{Backend: BackendOpenAI, Message: "API key is required"}
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// NewAzureOpenAI creates a provider routed through an Azure OpenAI endpoint.
func NewAzureOpenAI(apiKey, model string, azure AzureConfig) (*OpenAI, error) {
	if apiKey == "" {
		return nil, &Error{Backend: BackendOpenAI, Message: "Azure API key is required"}
	}
	if azure.Endpoint == "" {
		return nil, &Error{Backend: BackendOpenAI, Message: "Azure endpoint is required"}
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	config := openai.DefaultAzureConfig(apiKey, azure.Endpoint)
	if azure.APIVersion != "" {
		config.APIVersion = azure.APIVersion
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  model,
		azure:  true,
	}, nil
}

// Name identifies the backend.
func (o *OpenAI) Name() string { return string(BackendOpenAI) }

// Azure reports whether this provider routes through an Azure endpoint.
func (o *OpenAI) Azure() bool { return o.azure }

// Complete runs one chat completion at the minimum temperature.
func (o *OpenAI) Complete(ctx context.Context, prompt string, d Decoding) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: d.maxTokens(),
		// omitempty drops an exact zero, which the API reads as the default
		// temperature; the smallest nonzero float is effectively zero.
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &Error{Backend: BackendOpenAI, Message: "completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Backend: BackendOpenAI, Message: "no choices in response"}
	}

	return resp.Choices[0].Message.Content, nil
}

// Close releases resources held by the client.
func (o *OpenAI) Close() error { return nil }
