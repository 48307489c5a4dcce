package juris

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nkpandey/juris/core/generation"
	"github.com/nkpandey/juris/core/ingest"
	"github.com/nkpandey/juris/core/pipeline"
	"github.com/nkpandey/juris/core/router"
	"github.com/nkpandey/juris/database"
	"github.com/nkpandey/juris/helper"
	"github.com/nkpandey/juris/model"
	loadSql "github.com/nkpandey/juris/sql"
)

// Juris provides a unified interface to corpus ingestion and question routing
type Juris struct {
	DB       *helper.Database
	Chunks   *database.ChunksDBHandler
	Ingestor *ingest.Ingestor
	Router   *router.Router
	// Pluggable externals
	embed    pipeline.EmbedFunc
	generate generation.GenerateFunc
	// Logging
	log *slog.Logger
}

// NewJuris creates a new Juris instance with the chunk store initialized.
// An embedder and a generator still have to be plugged in, either with the
// Use* helpers or with SetEmbedder/SetGenerator.
func NewJuris(config *helper.DatabaseConfiguration, embeddingDim int) (*Juris, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("juris", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	chunks, err := database.NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	return &Juris{
		DB:     db,
		Chunks: chunks,
		log:    logger,
	}, nil
}

// Close closes the database connection
func (j *Juris) Close() error {
	if j.DB != nil && j.DB.Instance != nil {
		return j.DB.Instance.Close()
	}
	return nil
}

// SetEmbedder plugs in an embedder and rewires the ingestor and router.
func (j *Juris) SetEmbedder(embed pipeline.EmbedFunc) error {
	j.embed = embed
	return j.rewire()
}

// SetGenerator plugs in a generator and rewires the router.
func (j *Juris) SetGenerator(generate generation.GenerateFunc) error {
	j.generate = generate
	return j.rewire()
}

// UseLocalEmbedder plugs in the local all-MiniLM-L6-v2 embedder
// (384 dimensions, downloaded on first use).
func (j *Juris) UseLocalEmbedder() error {
	embed, err := pipeline.LocalEmbedder()
	if err != nil {
		return helper.NewError("create local embedder", err)
	}
	return j.SetEmbedder(embed)
}

// UseGeminiEmbedder plugs in the Gemini embedding API with the given output
// dimensionality. The dimension must match the one the store was created with.
func (j *Juris) UseGeminiEmbedder(ctx context.Context, apiKey string, dim int) error {
	embed, err := pipeline.GeminiEmbedder(ctx, apiKey, dim)
	if err != nil {
		return helper.NewError("create gemini embedder", err)
	}
	return j.SetEmbedder(embed)
}

// UseGeminiGenerator plugs in the Gemini chat API as the answer generator.
// An empty model selects the default model.
func (j *Juris) UseGeminiGenerator(ctx context.Context, apiKey string, model string) error {
	generate, err := generation.GeminiGenerator(ctx, apiKey, model)
	if err != nil {
		return helper.NewError("create gemini generator", err)
	}
	return j.SetGenerator(generate)
}

// rewire rebuilds the ingestor and router from the currently plugged-in
// externals. The ingestor only needs the embedder; the router additionally
// needs the generator.
func (j *Juris) rewire() error {
	if j.embed == nil {
		return nil
	}

	ingestor, err := ingest.NewIngestor(j.Chunks, j.embed, j.log)
	if err != nil {
		return helper.NewError("create ingestor", err)
	}
	j.Ingestor = ingestor

	if j.generate == nil {
		return nil
	}

	questionRouter, err := router.NewRouter(j.Chunks, j.embed, j.generate, j.log)
	if err != nil {
		return helper.NewError("create router", err)
	}
	j.Router = questionRouter

	return nil
}

// Ingest chunks, embeds and stores the given document.
// A nil config selects DefaultIngestConfig.
func (j *Juris) Ingest(ctx context.Context, document *model.Document, config *model.IngestConfig) (*model.IngestReport, error) {
	if j.Ingestor == nil {
		return nil, helper.NewError("ingest", fmt.Errorf("embedder not set, use UseLocalEmbedder() or SetEmbedder() first"))
	}
	return j.Ingestor.Ingest(ctx, document, config)
}

// IngestFile reads a file and ingests it. The file may be plain text or PDF.
func (j *Juris) IngestFile(ctx context.Context, filePath string, config *model.IngestConfig) (*model.IngestReport, error) {
	document, err := model.NewDocumentFromFile(filePath, nil)
	if err != nil {
		return nil, helper.NewError("read document file", err)
	}
	return j.Ingest(ctx, document, config)
}

// Exists reports whether the store already holds an indexed corpus.
func (j *Juris) Exists(ctx context.Context) (bool, error) {
	if j.Ingestor == nil {
		return false, helper.NewError("check corpus", fmt.Errorf("embedder not set, use UseLocalEmbedder() or SetEmbedder() first"))
	}
	return j.Ingestor.Exists(ctx)
}

// Reset deletes every stored chunk and invalidates the router, which must be
// re-initialized before answering again.
func (j *Juris) Reset(ctx context.Context) error {
	if j.Ingestor == nil {
		return helper.NewError("reset", fmt.Errorf("embedder not set, use UseLocalEmbedder() or SetEmbedder() first"))
	}

	err := j.Ingestor.Reset(ctx)
	if err != nil {
		return err
	}

	if j.Router != nil {
		j.Router.Invalidate()
	}

	return nil
}

// InitRouter probes the store and marks the router ready for answering.
func (j *Juris) InitRouter(ctx context.Context) error {
	if j.Router == nil {
		return helper.NewError("initialize router", fmt.Errorf("embedder and generator not set, use the Use* or Set* methods first"))
	}
	return j.Router.Init(ctx)
}

// IsReady reports whether the router has been initialized.
func (j *Juris) IsReady() bool {
	return j.Router != nil && j.Router.IsReady()
}

// Answer routes a question through retrieval and answers it, either grounded
// on retrieved corpus passages or from general knowledge.
// A nil config selects DefaultQueryConfig.
func (j *Juris) Answer(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	if j.Router == nil {
		return nil, helper.NewError("answer", fmt.Errorf("embedder and generator not set, use the Use* or Set* methods first"))
	}
	return j.Router.Answer(ctx, question, config)
}

// ChangeIndexType changes the vector index type between HNSW and IVFFlat
func (j *Juris) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	return j.Chunks.ChangeIndexType(ctx, indexType, params)
}
