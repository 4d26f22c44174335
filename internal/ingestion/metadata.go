package ingestion

import (
	"strings"
	"time"
)

// Metadata describes one ingested job posting.
type Metadata struct {
	SourceURL  string    `json:"source_url,omitempty"`
	CharCount  int       `json:"char_count"`
	WordCount  int       `json:"word_count"`
	IngestedAt time.Time `json:"ingested_at"`
}

// NewMetadata computes metadata for cleaned posting text.
func NewMetadata(text, sourceURL string) *Metadata {
	return &Metadata{
		SourceURL:  sourceURL,
		CharCount:  len(text),
		WordCount:  len(strings.Fields(text)),
		IngestedAt: time.Now().UTC(),
	}
}
