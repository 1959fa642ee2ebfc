package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIConfidence = 0.90

// OpenAIAdapter classifies tickets with the OpenAI chat completions API.
type OpenAIAdapter struct {
	client openai.Client
	name   string
	model  string
}

// NewOpenAIAdapter creates an OpenAI-backed adapter.
func NewOpenAIAdapter(name, apiKey, model string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIAdapter{client: client, name: name, model: model}, nil
}

func (a *OpenAIAdapter) Name() string {
	return a.name
}

func (a *OpenAIAdapter) Model() string {
	return a.model
}

// Classify sends the classification prompt to OpenAI and returns the raw
// category label. A deliberately small completion budget keeps the answer
// to the bare label.
func (a *OpenAIAdapter) Classify(ctx context.Context, ticket string) (Classification, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a ticket classification system."),
			openai.UserMessage(BuildPrompt(ticket)),
		},
		MaxCompletionTokens: openai.Int(20),
		Temperature:         openai.Float(0.3),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return Classification{}, wrapStatus(a.name, apierr.StatusCode, err)
		}
		return Classification{}, wrapTransport(a.name, err)
	}

	if len(resp.Choices) == 0 {
		return Classification{}, &ClassifyError{
			Provider: a.name,
			Kind:     FailureMalformed,
			Err:      fmt.Errorf("openai returned no choices"),
		}
	}

	return Classification{
		Category:   resp.Choices[0].Message.Content,
		Confidence: openAIConfidence,
	}, nil
}
