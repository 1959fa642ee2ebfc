package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicConfidence = 0.90

// AnthropicAdapter classifies tickets with the Anthropic messages API.
type AnthropicAdapter struct {
	client anthropic.Client
	name   string
	model  string
}

// NewAnthropicAdapter creates an Anthropic-backed adapter.
func NewAnthropicAdapter(name, apiKey, model string) (*AnthropicAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicAdapter{client: client, name: name, model: model}, nil
}

func (a *AnthropicAdapter) Name() string {
	return a.name
}

func (a *AnthropicAdapter) Model() string {
	return a.model
}

// Classify sends the classification prompt to Claude and returns the raw
// category label.
func (a *AnthropicAdapter) Classify(ctx context.Context, ticket string) (Classification, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 20,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(ticket))),
		},
	})
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			return Classification{}, wrapStatus(a.name, apierr.StatusCode, err)
		}
		return Classification{}, wrapTransport(a.name, err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	if content == "" {
		return Classification{}, &ClassifyError{
			Provider: a.name,
			Kind:     FailureMalformed,
			Err:      fmt.Errorf("anthropic returned no text content"),
		}
	}

	return Classification{Category: content, Confidence: anthropicConfidence}, nil
}
