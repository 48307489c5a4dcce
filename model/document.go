package model

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Document represents the source corpus before ingestion. Content holds the
// raw bytes (PDF or plain text); it is consumed by ingestion and never stored.
type Document struct {
	RID      uuid.UUID `json:"rid"`
	Title    string    `json:"title"`
	Source   string    `json:"source,omitempty"`
	Content  []byte    `json:"-"`
	Metadata Metadata  `json:"metadata,omitempty"`
}

// NewDocumentFromFile reads a file and creates a Document with the file content.
// The title defaults to the filename without extension, the source to the file path.
func NewDocumentFromFile(filePath string, metadata Metadata) (*Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(filePath)
	title := filename[:len(filename)-len(filepath.Ext(filename))]
	if title == "" {
		title = filename
	}

	return &Document{
		RID:      uuid.New(),
		Title:    title,
		Source:   filePath,
		Content:  content,
		Metadata: metadata,
	}, nil
}

// IngestReport summarizes one ingestion run. ChunksStored equals ChunksTotal
// on success; on failure the accompanying IngestError carries the same
// partial count.
type IngestReport struct {
	RunID        uuid.UUID `json:"run_id"`
	Corpus       string    `json:"corpus"`
	ChunksTotal  int       `json:"chunks_total"`
	ChunksStored int       `json:"chunks_stored"`
}
