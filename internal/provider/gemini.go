package provider

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// defaultGeminiModel is used when no model is configured.
const defaultGeminiModel = "gemini-2.5-flash"

// Gemini is the Google Gemini-backed provider.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &Error{Backend: BackendGemini, Message: "API key is required"}
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Backend: BackendGemini, Message: "failed to create client", Cause: err}
	}

	return &Gemini{client: client, model: model}, nil
}

// Name identifies the backend.
func (g *Gemini) Name() string { return string(BackendGemini) }

// Complete runs one generation at zero temperature.
func (g *Gemini) Complete(ctx context.Context, prompt string, d Decoding) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(int32(d.maxTokens()))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &Error{Backend: BackendGemini, Message: "completion failed", Cause: err}
	}

	return extractGeminiText(resp)
}

// Close releases resources held by the client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractGeminiText extracts the text parts from a Gemini API response.
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &Error{Backend: BackendGemini, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &Error{Backend: BackendGemini, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &Error{Backend: BackendGemini, Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
