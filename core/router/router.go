package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/nkpandey/juris/core/generation"
	"github.com/nkpandey/juris/core/pipeline"
	"github.com/nkpandey/juris/database"
	"github.com/nkpandey/juris/model"
)

// Router decides per question whether to answer from retrieved corpus
// passages (grounded path) or from the generator's general knowledge
// (direct path).
type Router struct {
	store    database.Store
	embed    pipeline.EmbedFunc
	generate generation.GenerateFunc
	logger   *slog.Logger
	ready    atomic.Bool
}

// NewRouter creates a router over the given store, embedder and generator.
// The router starts uninitialized; call Init before Answer.
func NewRouter(store database.Store, embed pipeline.EmbedFunc, generate generation.GenerateFunc, logger *slog.Logger) (*Router, error) {
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}
	if embed == nil {
		return nil, fmt.Errorf("embedder must not be nil")
	}
	if generate == nil {
		return nil, fmt.Errorf("generator must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		store:    store,
		embed:    embed,
		generate: generate,
		logger:   logger,
	}, nil
}

// Init probes the vector store and marks the router ready. An empty store is
// a valid ready state; every question will then take the direct path.
func (r *Router) Init(ctx context.Context) error {
	hasChunks, err := r.store.HasChunks(ctx)
	if err != nil {
		return model.NewRouterError(model.CauseStoreReadFailed, err)
	}

	r.ready.Store(true)
	r.logger.Info("Router initialized", slog.Bool("corpus_indexed", hasChunks))

	return nil
}

// IsReady reports whether Init has completed since the last Invalidate.
func (r *Router) IsReady() bool {
	return r.ready.Load()
}

// Invalidate returns the router to the uninitialized state. Called after the
// vector store is reset so stale assumptions about the index are dropped.
func (r *Router) Invalidate() {
	r.ready.Store(false)
	r.logger.Info("Router invalidated")
}

// Route makes the pure routing decision: grounded if and only if at least one
// result scored at or above the threshold. Results must be ordered descending
// by score, so only the top result needs checking.
func (r *Router) Route(results []*model.RetrievalResult, threshold float64) model.RoutePath {
	if len(results) > 0 && results[0].Score >= threshold {
		return model.RouteGrounded
	}
	return model.RouteDirect
}

// Answer embeds the question, retrieves the nearest chunks, routes, and
// generates the answer. A nil config selects DefaultQueryConfig.
func (r *Router) Answer(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	if !r.ready.Load() {
		return nil, model.NewRouterError(model.CauseNotInitialized, fmt.Errorf("router is not initialized, call Init first"))
	}
	if question == "" {
		return nil, model.NewConfigError("question", "must not be empty")
	}

	queryConfig := model.DefaultQueryConfig()
	if config != nil {
		queryConfig = *config
	}
	if err := queryConfig.Validate(); err != nil {
		return nil, err
	}

	embeddings, err := r.embed(ctx, []string{question})
	if err != nil {
		return nil, model.NewRouterError(model.CauseEmbeddingFailed, err)
	}
	if len(embeddings) != 1 {
		return nil, model.NewRouterError(model.CauseEmbeddingFailed, fmt.Errorf("expected 1 embedding, got %d", len(embeddings)))
	}

	results, err := r.store.QueryChunks(ctx, embeddings[0], queryConfig.TopK)
	if err != nil {
		return nil, model.NewRouterError(model.CauseStoreReadFailed, err)
	}

	path := r.Route(results, queryConfig.RelevanceThreshold)

	topScore := 0.0
	if len(results) > 0 {
		topScore = results[0].Score
	}
	r.logger.Debug("Routing decision",
		slog.String("path", string(path)),
		slog.Int("retrieved", len(results)),
		slog.Float64("top_score", topScore),
		slog.Float64("threshold", queryConfig.RelevanceThreshold),
	)

	if path == model.RouteGrounded {
		return r.answerGrounded(ctx, question, results, &queryConfig)
	}
	return r.answerDirect(ctx, question)
}

// answerGrounded generates from every retrieved chunk that cleared the
// threshold and cites all of them.
func (r *Router) answerGrounded(ctx context.Context, question string, results []*model.RetrievalResult, config *model.QueryConfig) (*model.Answer, error) {
	var cited []*model.RetrievalResult
	for _, result := range results {
		if result.Score >= config.RelevanceThreshold {
			cited = append(cited, result)
		}
	}

	prompt := GroundedPrompt(question, cited, config.MaxContextChars)
	text, err := r.generate(ctx, prompt)
	if err != nil {
		return nil, model.NewRouterError(model.CauseGenerationFailed, err)
	}

	citedIDs := make([]string, len(cited))
	for i, result := range cited {
		citedIDs[i] = result.Chunk.ID
	}

	return &model.Answer{
		Text:          text,
		Path:          model.RouteGrounded,
		CitedChunkIDs: citedIDs,
	}, nil
}

// answerDirect generates from general knowledge and flags the answer as not
// corpus-backed.
func (r *Router) answerDirect(ctx context.Context, question string) (*model.Answer, error) {
	text, err := r.generate(ctx, DirectPrompt(question))
	if err != nil {
		return nil, model.NewRouterError(model.CauseGenerationFailed, err)
	}

	return &model.Answer{
		Text: text + "\n\n" + DirectAnswerNote,
		Path: model.RouteDirect,
	}, nil
}
