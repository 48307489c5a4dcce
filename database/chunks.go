package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nkpandey/juris/helper"
	"github.com/nkpandey/juris/model"
	loadSql "github.com/nkpandey/juris/sql"
	"github.com/pgvector/pgvector-go"
)

// Store defines the vector store operations the ingestion and routing
// layers depend on.
type Store interface {
	UpsertChunks(ctx context.Context, chunks []*model.Chunk) error
	QueryChunks(ctx context.Context, embedding []float32, topK int) ([]*model.RetrievalResult, error)
	DeleteAllChunks(ctx context.Context) error
	HasChunks(ctx context.Context) (bool, error)
}

// ChunksDBHandler handles chunk-related database operations
type ChunksDBHandler struct {
	db *helper.Database
}

// NewChunksDBHandler creates a new chunks database handler.
// It initializes the database connection and loads chunk-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewChunksDBHandler(db *helper.Database, embeddingDim int, force bool) (*ChunksDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if embeddingDim <= 0 {
		return nil, helper.NewError("embedding dimension validation", fmt.Errorf("embedding dimension must be positive"))
	}

	chunksDbHandler := &ChunksDBHandler{
		db: db,
	}

	err := loadSql.LoadChunksSql(chunksDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load chunks sql", err)
	}

	err = chunksDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ChunksDBHandler")

	return chunksDbHandler, nil
}

// CreateTable creates the 'chunks' table in the database.
// If the table already exists, it does not create it again.
// It also creates the vector extension index.
func (h *ChunksDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_chunks($1);`, embeddingDim)
	if err != nil {
		return helper.NewError("initialize chunks table", err)
	}

	h.db.Logger.Info("Checked/created table chunks")

	return nil
}

// UpsertChunks inserts the given chunks, replacing existing chunks with the
// same id. All chunks of the batch are written in a single transaction.
func (h *ChunksDBHandler) UpsertChunks(ctx context.Context, chunks []*model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := h.db.Instance.BeginTx(ctx, nil)
	if err != nil {
		return helper.NewError("begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, chunk := range chunks {
		row := tx.QueryRowContext(
			ctx,
			`SELECT * FROM upsert_chunk($1, $2, $3, $4, $5)`,
			chunk.ID,
			chunk.Text,
			chunk.SourceOffset,
			chunk.Metadata,
			pgvector.NewVector(chunk.Embedding),
		)

		err := row.Scan(
			&chunk.ID,
			&chunk.Text,
			&chunk.SourceOffset,
			&chunk.Metadata,
			&chunk.CreatedAt,
		)
		if err != nil {
			return helper.NewError("scan", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return helper.NewError("commit transaction", err)
	}

	return nil
}

// QueryChunks performs vector similarity search and returns up to topK
// results ordered by descending cosine similarity.
func (h *ChunksDBHandler) QueryChunks(ctx context.Context, embedding []float32, topK int) ([]*model.RetrievalResult, error) {
	if topK <= 0 {
		return nil, helper.NewError("query validation", fmt.Errorf("topK must be positive"))
	}

	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_chunks_by_similarity($1, $2)`,
		pgvector.NewVector(embedding),
		topK,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var results []*model.RetrievalResult
	for rows.Next() {
		chunk := &model.Chunk{}
		err := rows.Scan(
			&chunk.ID,
			&chunk.Text,
			&chunk.SourceOffset,
			&chunk.Metadata,
			&chunk.CreatedAt,
			&chunk.Similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		results = append(results, &model.RetrievalResult{
			Chunk: chunk,
			Score: chunk.Similarity,
		})
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return results, nil
}

// DeleteAllChunks removes every stored chunk. Deleting from an empty store
// is not an error.
func (h *ChunksDBHandler) DeleteAllChunks(ctx context.Context) error {
	_, err := h.db.Instance.ExecContext(ctx, `SELECT delete_all_chunks()`)
	if err != nil {
		return helper.NewError("exec", err)
	}

	h.db.Logger.Info("Deleted all chunks")

	return nil
}

// HasChunks reports whether the store contains at least one chunk.
func (h *ChunksDBHandler) HasChunks(ctx context.Context) (bool, error) {
	var count int64
	err := h.db.Instance.QueryRowContext(ctx, `SELECT count_chunks()`).Scan(&count)
	if err != nil {
		return false, helper.NewError("scan", err)
	}
	return count > 0, nil
}

// CountChunks returns the number of stored chunks.
func (h *ChunksDBHandler) CountChunks(ctx context.Context) (int64, error) {
	var count int64
	err := h.db.Instance.QueryRowContext(ctx, `SELECT count_chunks()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}
