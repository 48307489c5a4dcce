package juris

import (
	"context"
	"strings"
	"testing"

	"github.com/nkpandey/juris/core/pipeline"
	"github.com/nkpandey/juris/helper"
	"github.com/nkpandey/juris/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 3

// testEmbedder creates a deterministic keyword-based embedder for testing.
// Texts about the same topic map to the same unit vector, so similarity
// search behaves predictably without a real model.
func testEmbedder() pipeline.EmbedFunc {
	return func(ctx context.Context, texts []string) ([][]float32, error) {
		embeddings := make([][]float32, len(texts))
		for i, text := range texts {
			lower := strings.ToLower(text)
			switch {
			case strings.Contains(lower, "equality"):
				embeddings[i] = []float32{1, 0, 0}
			case strings.Contains(lower, "murder"):
				embeddings[i] = []float32{0, 1, 0}
			default:
				embeddings[i] = []float32{0, 0, 1}
			}
		}
		return embeddings, nil
	}
}

// testGenerator returns a fixed answer and records the prompts it saw.
func testGenerator(prompts *[]string) func(ctx context.Context, prompt string) (string, error) {
	return func(ctx context.Context, prompt string) (string, error) {
		if prompts != nil {
			*prompts = append(*prompts, prompt)
		}
		return "generated answer", nil
	}
}

func initJuris(t *testing.T) *Juris {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")

	j, err := NewJuris(dbConfig, testDim)
	require.NoError(t, err, "failed to create juris")
	require.NotNil(t, j, "expected juris to be non-nil")

	t.Cleanup(func() {
		j.Close()
	})

	return j
}

func constitutionDocument() *model.Document {
	return &model.Document{
		Title:   "constitution excerpt",
		Source:  "constitution.txt",
		Content: []byte("Article 14 guarantees equality before the law to every person within the territory of India."),
	}
}

func ipcDocument() *model.Document {
	return &model.Document{
		Title:   "ipc excerpt",
		Source:  "ipc.txt",
		Content: []byte("Section 302 prescribes the punishment for murder, which may extend to imprisonment for life."),
	}
}

func TestNewJuris(t *testing.T) {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err)

	t.Run("Valid call NewJuris", func(t *testing.T) {
		j, err := NewJuris(dbConfig, testDim)
		require.NoError(t, err, "Expected NewJuris to not return an error")
		require.NotNil(t, j, "Expected NewJuris to return a non-nil instance")
		assert.NotNil(t, j.DB, "Expected juris to have a database instance")
		assert.NotNil(t, j.Chunks, "Expected juris to have a chunks handler")
		assert.Nil(t, j.Ingestor, "Expected ingestor to be nil before an embedder is set")
		assert.Nil(t, j.Router, "Expected router to be nil before a generator is set")

		err = j.Close()
		assert.NoError(t, err, "Expected Close to not return an error")
	})

	t.Run("Juris with nil database handles Close gracefully", func(t *testing.T) {
		j := &Juris{}

		err := j.Close()
		assert.NoError(t, err, "Expected Close to handle nil DB gracefully")
	})
}

func TestSetEmbedderAndGenerator(t *testing.T) {
	j := initJuris(t)

	t.Run("Setting an embedder wires the ingestor", func(t *testing.T) {
		err := j.SetEmbedder(testEmbedder())

		require.NoError(t, err)
		assert.NotNil(t, j.Ingestor, "Expected ingestor to be wired")
		assert.Nil(t, j.Router, "Expected router to stay nil without a generator")
	})

	t.Run("Setting a generator wires the router", func(t *testing.T) {
		err := j.SetGenerator(testGenerator(nil))

		require.NoError(t, err)
		assert.NotNil(t, j.Router, "Expected router to be wired")
		assert.False(t, j.IsReady(), "Expected router to start uninitialized")
	})
}

func TestJurisIngestAndAnswer(t *testing.T) {
	j := initJuris(t)
	ctx := context.Background()

	require.NoError(t, j.SetEmbedder(testEmbedder()))

	var prompts []string
	require.NoError(t, j.SetGenerator(testGenerator(&prompts)))

	require.NoError(t, j.Reset(ctx))

	t.Run("Ingest documents", func(t *testing.T) {
		config := model.DefaultIngestConfig()

		report, err := j.Ingest(ctx, constitutionDocument(), &config)
		require.NoError(t, err)
		assert.Equal(t, 1, report.ChunksStored)

		ipcConfig := config
		ipcConfig.Corpus = "ipc"
		report, err = j.Ingest(ctx, ipcDocument(), &ipcConfig)
		require.NoError(t, err)
		assert.Equal(t, 1, report.ChunksStored)

		exists, err := j.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Answer before InitRouter fails", func(t *testing.T) {
		_, err := j.Answer(ctx, "What does Article 14 guarantee?", nil)

		assert.Error(t, err)
		assert.Equal(t, model.CauseNotInitialized, model.CauseOf(err))
	})

	t.Run("Initialize router", func(t *testing.T) {
		err := j.InitRouter(ctx)

		require.NoError(t, err)
		assert.True(t, j.IsReady())
	})

	t.Run("Relevant question takes the grounded path", func(t *testing.T) {
		answer, err := j.Answer(ctx, "What does the Constitution say about equality?", nil)

		require.NoError(t, err)
		assert.Equal(t, model.RouteGrounded, answer.Path)
		assert.Equal(t, []string{"constitution_ipc-000000"}, answer.CitedChunkIDs)
		assert.Contains(t, answer.Text, "generated answer")
	})

	t.Run("Unrelated question takes the direct path", func(t *testing.T) {
		answer, err := j.Answer(ctx, "Who won the cricket world cup?", nil)

		require.NoError(t, err)
		assert.Equal(t, model.RouteDirect, answer.Path)
		assert.Empty(t, answer.CitedChunkIDs)
	})

	t.Run("Reset invalidates the router", func(t *testing.T) {
		err := j.Reset(ctx)
		require.NoError(t, err)

		assert.False(t, j.IsReady(), "Expected router to be invalidated after reset")

		exists, err := j.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists, "Expected store to be empty after reset")

		_, err = j.Answer(ctx, "What about equality?", nil)
		assert.Error(t, err)
		assert.Equal(t, model.CauseNotInitialized, model.CauseOf(err))
	})

	t.Run("Empty store answers direct after re-init", func(t *testing.T) {
		err := j.InitRouter(ctx)
		require.NoError(t, err)

		answer, err := j.Answer(ctx, "What does the Constitution say about equality?", nil)

		require.NoError(t, err)
		assert.Equal(t, model.RouteDirect, answer.Path, "An empty store can only answer direct")
	})
}

func TestJurisWithoutExternals(t *testing.T) {
	j := initJuris(t)
	ctx := context.Background()

	t.Run("Ingest without embedder fails", func(t *testing.T) {
		_, err := j.Ingest(ctx, constitutionDocument(), nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "embedder not set")
	})

	t.Run("Answer without generator fails", func(t *testing.T) {
		_, err := j.Answer(ctx, "Question?", nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not set")
	})

	t.Run("InitRouter without externals fails", func(t *testing.T) {
		err := j.InitRouter(ctx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not set")
	})
}

func TestJurisChangeIndexType(t *testing.T) {
	j := initJuris(t)
	ctx := context.Background()

	t.Run("Switch index types", func(t *testing.T) {
		err := j.ChangeIndexType(ctx, "ivfflat", map[string]interface{}{"lists": 10})
		assert.NoError(t, err)

		err = j.ChangeIndexType(ctx, "hnsw", nil)
		assert.NoError(t, err)
	})
}
