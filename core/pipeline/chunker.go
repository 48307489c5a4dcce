package pipeline

import (
	"fmt"
	"strings"
)

// WindowChunker creates a chunker that splits text into windows of chunkSize
// characters, each sharing overlap characters with its predecessor. For a text
// of length L this yields ceil((L-overlap)/(chunkSize-overlap)) spans; a text
// no longer than chunkSize yields exactly one.
func WindowChunker(chunkSize int, overlap int) ChunkFunc {
	return func(text string) ([]Span, error) {
		if chunkSize <= 0 {
			return nil, fmt.Errorf("chunk size must be positive")
		}
		if overlap < 0 || overlap >= chunkSize {
			return nil, fmt.Errorf("overlap must be in [0, chunk size)")
		}

		if strings.TrimSpace(text) == "" {
			return []Span{}, nil
		}

		runes := []rune(text)
		step := chunkSize - overlap

		var spans []Span
		for start := 0; ; start += step {
			end := start + chunkSize
			if end > len(runes) {
				end = len(runes)
			}

			spans = append(spans, Span{
				Text:         string(runes[start:end]),
				SourceOffset: start,
				Index:        len(spans),
			})

			if end >= len(runes) {
				break
			}
		}

		return spans, nil
	}
}

// SentenceChunker creates a chunker that groups whole sentences, at most
// maxSentencesPerChunk per span. Offsets are positions in the normalized
// sentence stream, not byte offsets into the raw text.
func SentenceChunker(maxSentencesPerChunk int) ChunkFunc {
	return func(text string) ([]Span, error) {
		if maxSentencesPerChunk <= 0 {
			return nil, fmt.Errorf("max sentences per chunk must be positive")
		}

		if strings.TrimSpace(text) == "" {
			return []Span{}, nil
		}

		text = strings.ReplaceAll(text, "! ", "!|")
		text = strings.ReplaceAll(text, "? ", "?|")
		text = strings.ReplaceAll(text, ". ", ".|")

		var sentences []string
		for _, s := range strings.Split(text, "|") {
			s = strings.TrimSpace(s)
			if s != "" {
				sentences = append(sentences, s)
			}
		}

		var spans []Span
		var current []string
		pos := 0

		flush := func() {
			if len(current) == 0 {
				return
			}
			content := strings.Join(current, " ")
			spans = append(spans, Span{
				Text:         content,
				SourceOffset: pos,
				Index:        len(spans),
			})
			pos += len(content)
			current = nil
		}

		for _, sentence := range sentences {
			current = append(current, sentence)
			if len(current) >= maxSentencesPerChunk {
				flush()
			}
		}
		flush()

		return spans, nil
	}
}
