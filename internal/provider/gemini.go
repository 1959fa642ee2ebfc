package provider

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const geminiConfidence = 0.95

// GeminiAdapter classifies tickets with the Gemini API.
type GeminiAdapter struct {
	client *genai.Client
	name   string
	model  string
}

// NewGeminiAdapter creates a Gemini-backed adapter.
func NewGeminiAdapter(name, apiKey, model string) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiAdapter{
		client: client,
		name:   name,
		model:  model,
	}, nil
}

func (a *GeminiAdapter) Name() string {
	return a.name
}

func (a *GeminiAdapter) Model() string {
	return a.model
}

// Classify sends the classification prompt to Gemini and returns the raw
// category label.
func (a *GeminiAdapter) Classify(ctx context.Context, ticket string) (Classification, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(BuildPrompt(ticket)), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return Classification{}, wrapStatus(a.name, apiErr.Code, err)
		}
		return Classification{}, wrapTransport(a.name, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return Classification{}, &ClassifyError{
			Provider: a.name,
			Kind:     FailureMalformed,
			Err:      fmt.Errorf("gemini returned no candidates"),
		}
	}

	var content string
	if resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				content += part.Text
			}
		}
	}

	return Classification{Category: content, Confidence: geminiConfidence}, nil
}
