package models

import (
	"time"
)

type AddDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

type AddDocumentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Length    int       `json:"length"`
	CreatedAt time.Time `json:"created_at"`
}

type ComparePairRequest struct {
	DocumentAID string   `json:"document_a_id"`
	DocumentBID string   `json:"document_b_id"`
	Threshold   *float64 `json:"threshold,omitempty"`
}

type CompareAllRequest struct {
	DocumentIDs []string `json:"document_ids,omitempty"`
	Threshold   *float64 `json:"threshold,omitempty"`
}

type CompareAllResponse struct {
	DocumentCount int                `json:"document_count"`
	PairCount     int                `json:"pair_count"`
	FlaggedCount  int                `json:"flagged_count"`
	Results       []ComparisonResult `json:"results"`
	CompletedAt   time.Time          `json:"completed_at"`
}

type AsyncAnalysisResponse struct {
	RunID       string    `json:"run_id"`
	Message     string    `json:"message"`
	RequestedAt time.Time `json:"requested_at"`
}

type ServiceStatus struct {
	DocumentCount int       `json:"document_count"`
	ShingleMode   string    `json:"shingle_mode"`
	ShingleSize   int       `json:"shingle_size"`
	Winnowing     bool      `json:"winnowing"`
	Threshold     float64   `json:"threshold"`
	Timestamp     time.Time `json:"timestamp"`
}
