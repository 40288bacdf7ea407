package models

import (
	"time"
)

type DocumentAddedEvent struct {
	DocumentID string `json:"document_id"`
	Name       string `json:"name"`
	Source     string `json:"source"`
	Timestamp  int64  `json:"timestamp"`
}

type AnalysisRequestedEvent struct {
	RunID       string   `json:"run_id"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	Threshold   float64  `json:"threshold"`
	RequestedAt int64    `json:"requested_at"`
}

type AnalysisCompletedEvent struct {
	RunID          string        `json:"run_id"`
	DocumentCount  int           `json:"document_count"`
	PairCount      int           `json:"pair_count"`
	FlaggedCount   int           `json:"flagged_count"`
	TopPercentage  float64       `json:"top_percentage"`
	FlaggedPairs   []FlaggedPair `json:"flagged_pairs,omitempty"`
	ProcessingTime int           `json:"processing_time_ms"`
	CompletedAt    time.Time     `json:"completed_at"`
}

type AnalysisFailedEvent struct {
	RunID    string    `json:"run_id"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// FlaggedPair is the compact form of a plagiarized pair carried on the wire.
type FlaggedPair struct {
	DocumentAID string  `json:"document_a_id"`
	DocumentBID string  `json:"document_b_id"`
	Percentage  float64 `json:"percentage"`
	Label       string  `json:"label"`
}
