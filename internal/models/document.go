package models

import (
	"time"
)

// DocumentSource tags where a document's content came from.
type DocumentSource string

const (
	SourceUpload DocumentSource = "upload"
	SourceURL    DocumentSource = "url"
)

func (s DocumentSource) Valid() bool {
	return s == SourceUpload || s == SourceURL
}

// Document is an immutable unit of submitted text. Content is always plain
// text; extraction from binary formats happens before it reaches this service.
type Document struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Content   string         `json:"content"`
	Source    DocumentSource `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
}

// DocumentFingerprint is the derived representation used for comparison.
// It is a deterministic function of the document content and the detection
// configuration and is never mutated after construction. Shingles keep their
// original order so common fragments can be located later; Fingerprints is
// the deduplicated hash set.
type DocumentFingerprint struct {
	DocumentID       string              `json:"document_id"`
	DocumentName     string              `json:"document_name"`
	NormalizedText   string              `json:"normalized_text"`
	Shingles         []string            `json:"-"`
	Fingerprints     map[uint32]struct{} `json:"-"`
	ShingleCount     int                 `json:"shingle_count"`
	FingerprintCount int                 `json:"fingerprint_count"`
}
