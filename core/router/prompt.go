package router

import (
	"fmt"
	"strings"

	"github.com/nkpandey/juris/model"
)

// DirectAnswerNote is appended to every direct-path answer so callers can
// tell the reader the answer is not backed by the indexed corpus.
const DirectAnswerNote = "Note: This answer is based on general legal knowledge, not on the indexed text of the Constitution of India or the Indian Penal Code."

// GroundedPrompt builds the generation prompt for the grounded path. Every
// cited chunk is rendered as a [id]-tagged passage; maxContextChars > 0 clamps
// each passage to that many characters.
func GroundedPrompt(question string, cited []*model.RetrievalResult, maxContextChars int) string {
	var contextBuilder strings.Builder
	for _, result := range cited {
		text := result.Chunk.Text
		if maxContextChars > 0 {
			runes := []rune(text)
			if len(runes) > maxContextChars {
				text = string(runes[:maxContextChars])
			}
		}
		contextBuilder.WriteString(fmt.Sprintf("[%s]\n%s\n\n", result.Chunk.ID, text))
	}

	return fmt.Sprintf(`You are a legal assistant answering questions about the Constitution of India and the Indian Penal Code.

Answer the question using ONLY the passages below. Each passage is tagged with its source id in square brackets. Cite the ids of the passages you rely on. If the passages do not contain enough information to answer the question, say so explicitly instead of guessing.

Passages:
%s
Question: %s

Answer:`, contextBuilder.String(), question)
}

// DirectPrompt builds the generation prompt for the direct path, used when no
// retrieved passage cleared the relevance threshold.
func DirectPrompt(question string) string {
	return fmt.Sprintf(`You are a legal assistant answering questions about the Constitution of India and the Indian Penal Code.

No relevant passages were found in the indexed corpus for this question. Answer from your general knowledge of Indian law. Be precise about article and section numbers, and say clearly when you are unsure.

Question: %s

Answer:`, question)
}
