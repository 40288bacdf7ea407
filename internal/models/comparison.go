package models

import (
	"time"
)

// MatchLevel is the discrete severity band assigned to a similarity score.
type MatchLevel int

const (
	MatchLevelNone MatchLevel = iota
	MatchLevelLow
	MatchLevelMedium
	MatchLevelHigh
	MatchLevelVeryHigh
)

func (l MatchLevel) String() string {
	switch l {
	case MatchLevelVeryHigh:
		return "very-high"
	case MatchLevelHigh:
		return "high"
	case MatchLevelMedium:
		return "medium"
	case MatchLevelLow:
		return "low"
	default:
		return "none"
	}
}

// SimilarityBundle carries every coefficient computed for one document pair,
// together with the set sizes they were derived from.
type SimilarityBundle struct {
	Jaccard          float64 `json:"jaccard"`
	Cosine           float64 `json:"cosine"`
	Overlap          float64 `json:"overlap"`
	Dice             float64 `json:"dice"`
	IntersectionSize int     `json:"intersection_size"`
	UnionSize        int     `json:"union_size"`
	SizeA            int     `json:"size_a"`
	SizeB            int     `json:"size_b"`
}

// CommonShingle is one shingle value shared by both documents, with the
// positions where it occurs in each shingle sequence. Used for highlighting.
type CommonShingle struct {
	Shingle    string `json:"shingle"`
	PositionsA []int  `json:"positions_a"`
	PositionsB []int  `json:"positions_b"`
}

// ComparisonResult is the outcome of comparing two document fingerprints.
// Created once per pair and never mutated. CommonShingles is capped at 100
// entries; consumers must not assume completeness beyond that.
type ComparisonResult struct {
	DocumentAID    string           `json:"document_a_id"`
	DocumentAName  string           `json:"document_a_name"`
	DocumentBID    string           `json:"document_b_id"`
	DocumentBName  string           `json:"document_b_name"`
	Similarity     SimilarityBundle `json:"similarity"`
	Percentage     float64          `json:"percentage"`
	Level          MatchLevel       `json:"level"`
	Label          string           `json:"label"`
	IsPlagiarized  bool             `json:"is_plagiarized"`
	Threshold      float64          `json:"threshold"`
	CommonShingles []CommonShingle  `json:"common_shingles,omitempty"`
	ComparedAt     time.Time        `json:"compared_at"`
}
