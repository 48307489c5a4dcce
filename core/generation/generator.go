package generation

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the chat model used when no model name is given.
const DefaultGeminiModel = "gemini-2.0-flash"

// GenerateFunc produces an answer text for the given prompt.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

// GeminiGenerator creates a generator backed by the Gemini chat API.
// An empty model selects DefaultGeminiModel.
func GeminiGenerator(ctx context.Context, apiKey string, model string) (GenerateFunc, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key must not be empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	return func(ctx context.Context, prompt string) (string, error) {
		if prompt == "" {
			return "", fmt.Errorf("prompt must not be empty")
		}

		contents := []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		}
		response, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			return "", fmt.Errorf("generation failed: %w", err)
		}

		text := response.Text()
		if text == "" {
			return "", fmt.Errorf("generation returned an empty response")
		}
		return text, nil
	}, nil
}
