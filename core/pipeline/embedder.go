package pipeline

import (
	"context"
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/nkpandey/juris/helper"
)

// LocalEmbeddingDim is the output dimension of the all-MiniLM-L6-v2 model.
const LocalEmbeddingDim = 384

// LocalEmbedder creates an embedder backed by a local sentence transformer
// model (all-MiniLM-L6-v2, 384 dimensions). The model is downloaded on first
// use. No network round trip is needed per call, which keeps ingestion of a
// large corpus cheap.
func LocalEmbedder() (EmbedFunc, error) {
	modelName := "sentence-transformers/all-MiniLM-L6-v2"
	modelPath, err := helper.PrepareModel(modelName, "onnx/model.onnx")
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "juris-embedder",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	return func(_ context.Context, texts []string) ([][]float32, error) {
		if len(texts) == 0 {
			return nil, nil
		}

		result, err := sentencePipeline.RunPipeline(texts)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embeddings: %w", err)
		}

		if len(result.Embeddings) != len(texts) {
			return nil, fmt.Errorf("embedding count mismatch: got %d embeddings for %d texts", len(result.Embeddings), len(texts))
		}

		return result.Embeddings, nil
	}, nil
}
