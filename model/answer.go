package model

// RoutePath identifies which answer path the router took for a question.
type RoutePath string

const (
	// RouteGrounded means the answer was generated from retrieved corpus
	// passages that cleared the relevance threshold.
	RouteGrounded RoutePath = "GROUNDED"
	// RouteDirect means no retrieved passage was relevant enough and the
	// generator answered from general knowledge alone.
	RouteDirect RoutePath = "DIRECT"
)

// Answer is the final result of a routing decision.
// When Path is RouteGrounded, CitedChunkIDs holds the ids of every chunk whose
// score met the relevance threshold, in descending score order; it is never
// empty. When Path is RouteDirect, CitedChunkIDs is empty.
type Answer struct {
	Text          string    `json:"text"`
	Path          RoutePath `json:"path"`
	CitedChunkIDs []string  `json:"cited_chunk_ids,omitempty"`
}
