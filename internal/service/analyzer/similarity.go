package analyzer

import (
	"math"

	"github.com/simcheck/detection-service/internal/models"
)

// Intersection returns the elements present in both sets. It iterates the
// smaller set; the result does not depend on iteration order.
func Intersection(a, b map[uint32]struct{}) map[uint32]struct{} {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	out := make(map[uint32]struct{})
	for v := range small {
		if _, ok := large[v]; ok {
			out[v] = struct{}{}
		}
	}
	return out
}

// Union returns the elements present in either set.
func Union(a, b map[uint32]struct{}) map[uint32]struct{} {
	out := make(map[uint32]struct{}, len(a)+len(b))
	for v := range a {
		out[v] = struct{}{}
	}
	for v := range b {
		out[v] = struct{}{}
	}
	return out
}

// Difference returns the elements of a that are not in b.
func Difference(a, b map[uint32]struct{}) map[uint32]struct{} {
	out := make(map[uint32]struct{})
	for v := range a {
		if _, ok := b[v]; !ok {
			out[v] = struct{}{}
		}
	}
	return out
}

// Jaccard is |A∩B| / |A∪B|. Two empty sets are defined as identical (1.0),
// never NaN.
func Jaccard(a, b map[uint32]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	inter := len(Intersection(a, b))
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Overlap is |A∩B| / min(|A|,|B|). Unlike Jaccard, an empty set on either
// side yields 0: overlap with nothing is no overlap. This asymmetry with the
// both-empty Jaccard rule is deliberate and must not be unified.
func Overlap(a, b map[uint32]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	min := len(a)
	if len(b) < min {
		min = len(b)
	}
	return float64(len(Intersection(a, b))) / float64(min)
}

// Cosine is |A∩B| / sqrt(|A|*|B|); 0 when either set is empty.
func Cosine(a, b map[uint32]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return float64(len(Intersection(a, b))) / math.Sqrt(float64(len(a))*float64(len(b)))
}

// Dice is 2|A∩B| / (|A|+|B|); both-empty is 1.0 like Jaccard.
func Dice(a, b map[uint32]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return 2 * float64(len(Intersection(a, b))) / float64(total)
}

// Classify maps a similarity score onto a discrete severity band. Cutoffs
// are inclusive on the lower bound, evaluated top-down.
func Classify(score float64) models.MatchLevel {
	switch {
	case score >= 0.8:
		return models.MatchLevelVeryHigh
	case score >= 0.6:
		return models.MatchLevelHigh
	case score >= 0.4:
		return models.MatchLevelMedium
	case score >= 0.2:
		return models.MatchLevelLow
	default:
		return models.MatchLevelNone
	}
}

// CommonShingles reports every shingle value that occurs in both sequences,
// with its occurrence positions in each. Records are emitted in order of the
// shingle's first occurrence in the first sequence.
func CommonShingles(shinglesA, shinglesB []string) []models.CommonShingle {
	indexA := buildPositionIndex(shinglesA)
	indexB := buildPositionIndex(shinglesB)

	var out []models.CommonShingle
	seen := make(map[string]struct{})
	for _, s := range shinglesA {
		if _, done := seen[s]; done {
			continue
		}
		seen[s] = struct{}{}

		posB, ok := indexB[s]
		if !ok {
			continue
		}

		out = append(out, models.CommonShingle{
			Shingle:    s,
			PositionsA: indexA[s],
			PositionsB: posB,
		})
	}

	return out
}

func buildPositionIndex(shingles []string) map[string][]int {
	index := make(map[string][]int, len(shingles))
	for i, s := range shingles {
		index[s] = append(index[s], i)
	}
	return index
}
