package pipeline

import "context"

// Span is a contiguous slice of extracted corpus text with its character
// offset into the source.
type Span struct {
	Text         string
	SourceOffset int
	Index        int
}

// ChunkFunc splits extracted text into ordered spans.
type ChunkFunc func(text string) ([]Span, error)

// EmbedFunc generates one embedding per input text. Implementations must be
// order preserving and return exactly len(texts) vectors.
type EmbedFunc func(ctx context.Context, texts []string) ([][]float32, error)
