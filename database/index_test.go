package database

import (
	"context"
	"testing"

	_ "github.com/lib/pq"
	"github.com/nkpandey/juris/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeIndexType(t *testing.T) {
	handler := newTestHandler(t)
	ctx := context.Background()

	err := handler.UpsertChunks(ctx, []*model.Chunk{
		testChunk("constitution_ipc-000000", 0, []float32{1, 0, 0}),
		testChunk("constitution_ipc-000001", 850, []float32{0, 1, 0}),
	})
	require.NoError(t, err)

	t.Run("Change to ivfflat", func(t *testing.T) {
		err := handler.ChangeIndexType(ctx, "ivfflat", map[string]interface{}{"lists": 10})
		assert.NoError(t, err)

		// Queries still work after the index swap
		results, err := handler.QueryChunks(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, len(results))
	})

	t.Run("Change back to hnsw with params", func(t *testing.T) {
		err := handler.ChangeIndexType(ctx, "hnsw", map[string]interface{}{"m": 8, "ef_construction": 32})
		assert.NoError(t, err)

		results, err := handler.QueryChunks(ctx, []float32{0, 1, 0}, 1)
		require.NoError(t, err)
		require.Equal(t, 1, len(results))
		assert.Equal(t, "constitution_ipc-000001", results[0].Chunk.ID)
	})

	t.Run("Unsupported index type fails", func(t *testing.T) {
		err := handler.ChangeIndexType(ctx, "btree", nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported index type")
	})
}
