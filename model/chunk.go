package model

import (
	"time"
)

// Chunk represents a bounded slice of the source corpus, the unit of
// embedding and retrieval. The ID is derived from the chunk's position in the
// corpus and stays stable across re-ingestion, so upserts overwrite instead of
// duplicating.
type Chunk struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	SourceOffset int       `json:"source_offset"`
	Embedding    []float32 `json:"embedding,omitempty"`
	Metadata     Metadata  `json:"metadata,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	// Similarity is set on chunks returned from a vector store query.
	Similarity float64 `json:"similarity,omitempty"`
}

// RetrievalResult is one entry of a vector store query response. Query
// responses are ordered descending by score, a cosine similarity in [0, 1].
type RetrievalResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}
