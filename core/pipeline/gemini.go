package pipeline

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiEmbedModel is the embedding model used by GeminiEmbedder.
const GeminiEmbedModel = "gemini-embedding-001"

// GeminiEmbedder creates an embedder backed by the Gemini embedding API.
// dim selects the output dimensionality and must match the dimension the
// vector store was created with.
func GeminiEmbedder(ctx context.Context, apiKey string, dim int) (EmbedFunc, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key must not be empty")
	}
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	outputDim := int32(dim)
	embeddingConfig := &genai.EmbedContentConfig{
		OutputDimensionality: &outputDim,
	}

	return func(ctx context.Context, texts []string) ([][]float32, error) {
		if len(texts) == 0 {
			return nil, nil
		}

		contents := make([]*genai.Content, len(texts))
		for i, text := range texts {
			contents[i] = genai.NewContentFromText(text, genai.RoleUser)
		}

		result, err := client.Models.EmbedContent(ctx, GeminiEmbedModel, contents, embeddingConfig)
		if err != nil {
			return nil, fmt.Errorf("embedding generation failed: %w", err)
		}

		if len(result.Embeddings) != len(texts) {
			return nil, fmt.Errorf("embedding count mismatch: got %d embeddings for %d texts", len(result.Embeddings), len(texts))
		}

		embeddings := make([][]float32, len(texts))
		for i, embedding := range result.Embeddings {
			if embedding == nil || len(embedding.Values) == 0 {
				return nil, fmt.Errorf("empty embedding at index %d", i)
			}
			embeddings[i] = embedding.Values
		}

		return embeddings, nil
	}, nil
}
