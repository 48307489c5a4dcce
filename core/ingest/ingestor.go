package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nkpandey/juris/core/pipeline"
	"github.com/nkpandey/juris/database"
	"github.com/nkpandey/juris/model"
)

// Ingestor turns documents into embedded chunks in the vector store.
type Ingestor struct {
	store  database.Store
	embed  pipeline.EmbedFunc
	logger *slog.Logger
}

// NewIngestor creates an ingestor over the given store and embedder.
func NewIngestor(store database.Store, embed pipeline.EmbedFunc, logger *slog.Logger) (*Ingestor, error) {
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}
	if embed == nil {
		return nil, fmt.Errorf("embedder must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Ingestor{
		store:  store,
		embed:  embed,
		logger: logger,
	}, nil
}

// Ingest extracts the document text, chunks it with a sliding window, embeds
// the chunks batch by batch and upserts them into the store. Chunk ids are
// derived from the corpus name and the chunk's window index, so re-ingesting
// the same document overwrites instead of duplicating. A nil config selects
// DefaultIngestConfig. On failure the returned IngestError carries how many
// chunks were already stored.
func (i *Ingestor) Ingest(ctx context.Context, document *model.Document, config *model.IngestConfig) (*model.IngestReport, error) {
	if document == nil {
		return nil, model.NewConfigError("document", "must not be nil")
	}

	ingestConfig := model.DefaultIngestConfig()
	if config != nil {
		ingestConfig = *config
	}
	if err := ingestConfig.Validate(); err != nil {
		return nil, err
	}

	text, err := pipeline.ExtractText(document.Content)
	if err != nil {
		return nil, model.NewIngestError(model.CauseExtractionFailed, 0, err)
	}

	chunker := pipeline.WindowChunker(ingestConfig.ChunkSize, ingestConfig.Overlap)
	spans, err := chunker(text)
	if err != nil {
		return nil, model.NewIngestError(model.CauseExtractionFailed, 0, err)
	}

	runID := uuid.New()
	i.logger.Info("Starting ingestion",
		slog.String("run_id", runID.String()),
		slog.String("corpus", ingestConfig.Corpus),
		slog.String("document", document.Title),
		slog.Int("chunks", len(spans)),
	)

	stored := 0
	for start := 0; start < len(spans); start += ingestConfig.BatchSize {
		end := min(start+ingestConfig.BatchSize, len(spans))
		batch := spans[start:end]

		texts := make([]string, len(batch))
		for j, span := range batch {
			texts[j] = span.Text
		}

		embeddings, err := i.embed(ctx, texts)
		if err != nil {
			return nil, model.NewIngestError(model.CauseEmbeddingFailed, stored, err)
		}
		if len(embeddings) != len(batch) {
			return nil, model.NewIngestError(model.CauseEmbeddingFailed, stored,
				fmt.Errorf("expected %d embeddings, got %d", len(batch), len(embeddings)))
		}

		chunks := make([]*model.Chunk, len(batch))
		for j, span := range batch {
			chunks[j] = &model.Chunk{
				ID:           ChunkID(ingestConfig.Corpus, span.Index),
				Text:         span.Text,
				SourceOffset: span.SourceOffset,
				Embedding:    embeddings[j],
				Metadata: model.Metadata{
					"corpus": ingestConfig.Corpus,
					"source": document.Source,
				},
			}
		}

		if err := i.store.UpsertChunks(ctx, chunks); err != nil {
			return nil, model.NewIngestError(model.CauseStoreWriteFailed, stored, err)
		}
		stored += len(chunks)
	}

	i.logger.Info("Finished ingestion",
		slog.String("run_id", runID.String()),
		slog.Int("chunks_stored", stored),
	)

	return &model.IngestReport{
		RunID:        runID,
		Corpus:       ingestConfig.Corpus,
		ChunksTotal:  len(spans),
		ChunksStored: stored,
	}, nil
}

// Reset deletes every chunk from the store. Resetting an empty store
// succeeds.
func (i *Ingestor) Reset(ctx context.Context) error {
	if err := i.store.DeleteAllChunks(ctx); err != nil {
		return model.NewIngestError(model.CauseStoreWriteFailed, 0, err)
	}

	i.logger.Info("Vector store reset")

	return nil
}

// Exists reports whether the store already holds an indexed corpus.
func (i *Ingestor) Exists(ctx context.Context) (bool, error) {
	exists, err := i.store.HasChunks(ctx)
	if err != nil {
		return false, model.NewIngestError(model.CauseStoreReadFailed, 0, err)
	}
	return exists, nil
}

// ChunkID builds the stable positional id of a chunk, e.g.
// "constitution_ipc-000042".
func ChunkID(corpus string, index int) string {
	return fmt.Sprintf("%s-%06d", corpus, index)
}
