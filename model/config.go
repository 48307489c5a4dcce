package model

import "fmt"

// IngestConfig represents configuration for one ingestion run.
type IngestConfig struct {
	// ChunkSize is the sliding window size in characters.
	ChunkSize int `json:"chunk_size"`
	// Overlap is the number of characters shared between consecutive chunks.
	// Must be smaller than ChunkSize.
	Overlap int `json:"overlap"`
	// BatchSize caps how many chunk texts are sent to the embedding service
	// per call.
	BatchSize int `json:"batch_size"`
	// Corpus names the ingested corpus. It prefixes chunk ids and is stored
	// in chunk metadata.
	Corpus string `json:"corpus"`
}

// DefaultIngestConfig returns the chunking parameters used for the
// constitution/IPC corpus. Legal clauses cross-reference each other (a section
// number in one chunk, its text in the next), so the overlap is generous.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		ChunkSize: 1000,
		Overlap:   150,
		BatchSize: 64,
		Corpus:    "constitution_ipc",
	}
}

// Validate checks the ingestion parameters and returns a ConfigError for the
// first invalid field.
func (c *IngestConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return NewConfigError("chunk_size", fmt.Sprintf("must be positive, got %d", c.ChunkSize))
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return NewConfigError("overlap", fmt.Sprintf("must be in [0, chunk_size), got %d", c.Overlap))
	}
	if c.BatchSize <= 0 {
		return NewConfigError("batch_size", fmt.Sprintf("must be positive, got %d", c.BatchSize))
	}
	if c.Corpus == "" {
		return NewConfigError("corpus", "must not be empty")
	}
	return nil
}

// QueryConfig represents configuration for one routing decision.
type QueryConfig struct {
	// TopK is the number of nearest chunks requested from the vector store.
	TopK int `json:"top_k"`
	// RelevanceThreshold is the minimum similarity score required to trust a
	// retrieved chunk as grounding. The comparison is inclusive: a chunk
	// scoring exactly the threshold is grounding.
	RelevanceThreshold float64 `json:"relevance_threshold"`
	// MaxContextChars clamps each chunk snippet in the grounded prompt.
	// Zero means no clamping.
	MaxContextChars int `json:"max_context_chars,omitempty"`
}

// DefaultQueryConfig returns a sensible default configuration. The threshold
// and TopK are operator-tunable, not derived.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		TopK:               5,
		RelevanceThreshold: 0.75,
		MaxContextChars:    0,
	}
}

// Validate checks the query parameters and returns a ConfigError for the
// first invalid field.
func (c *QueryConfig) Validate() error {
	if c.TopK <= 0 {
		return NewConfigError("top_k", fmt.Sprintf("must be positive, got %d", c.TopK))
	}
	if c.RelevanceThreshold < 0 || c.RelevanceThreshold > 1 {
		return NewConfigError("relevance_threshold", fmt.Sprintf("must be in [0, 1], got %v", c.RelevanceThreshold))
	}
	if c.MaxContextChars < 0 {
		return NewConfigError("max_context_chars", fmt.Sprintf("must not be negative, got %d", c.MaxContextChars))
	}
	return nil
}
