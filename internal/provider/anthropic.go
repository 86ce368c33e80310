package provider

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// defaultAnthropicModel is used when no model is configured.
const defaultAnthropicModel = "claude-sonnet-4-20250514"

// Anthropic is the Claude-backed provider.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic provider.
func NewAnthropic(apiKey, model string) (*Anthropic, error) {
	if apiKey == "" {
		return nil, &Error{Backend: BackendAnthropic, Message: "API key is required"}
	}
	if model == "" {
		model = defaultAnthropicModel
	}

	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Name identifies the backend.
func (a *Anthropic) Name() string { return string(BackendAnthropic) }

// Complete runs one message completion at zero temperature.
func (a *Anthropic) Complete(ctx context.Context, prompt string, d Decoding) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   int64(d.maxTokens()),
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", &Error{Backend: BackendAnthropic, Message: "completion failed", Cause: err}
	}

	var parts []string
	for _, block := range message.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", &Error{Backend: BackendAnthropic, Message: "no text content in response"}
	}

	return strings.Join(parts, ""), nil
}

// Close releases resources held by the client.
func (a *Anthropic) Close() error { return nil }
