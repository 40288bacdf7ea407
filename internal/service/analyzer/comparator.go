package analyzer

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/simcheck/detection-service/internal/models"
)

// maxCommonShingles caps the highlighting payload per pair. The cap is a
// performance bound, not a correctness requirement.
const maxCommonShingles = 100

// Comparator scores pairs of document fingerprints. Each comparison reads
// two immutable fingerprints and produces a fresh result, so calls may run
// concurrently.
type Comparator struct {
	logger zerolog.Logger
}

func NewComparator(logger zerolog.Logger) *Comparator {
	return &Comparator{logger: logger}
}

// CompareFingerprints computes the full similarity bundle for one pair. The
// verdict and classification are driven by the Jaccard coefficient;
// percentage is jaccard*100.
func (c *Comparator) CompareFingerprints(a, b *models.DocumentFingerprint, threshold float64) models.ComparisonResult {
	inter := Intersection(a.Fingerprints, b.Fingerprints)
	union := len(a.Fingerprints) + len(b.Fingerprints) - len(inter)

	jaccard := Jaccard(a.Fingerprints, b.Fingerprints)
	level := Classify(jaccard)

	common := CommonShingles(a.Shingles, b.Shingles)
	if len(common) > maxCommonShingles {
		common = common[:maxCommonShingles]
	}

	result := models.ComparisonResult{
		DocumentAID:   a.DocumentID,
		DocumentAName: a.DocumentName,
		DocumentBID:   b.DocumentID,
		DocumentBName: b.DocumentName,
		Similarity: models.SimilarityBundle{
			Jaccard:          jaccard,
			Cosine:           Cosine(a.Fingerprints, b.Fingerprints),
			Overlap:          Overlap(a.Fingerprints, b.Fingerprints),
			Dice:             Dice(a.Fingerprints, b.Fingerprints),
			IntersectionSize: len(inter),
			UnionSize:        union,
			SizeA:            len(a.Fingerprints),
			SizeB:            len(b.Fingerprints),
		},
		Percentage:     jaccard * 100,
		Level:          level,
		Label:          level.String(),
		IsPlagiarized:  jaccard >= threshold,
		Threshold:      threshold,
		CommonShingles: common,
		ComparedAt:     time.Now().UTC(),
	}

	c.logger.Debug().
		Str("document_a", a.DocumentID).
		Str("document_b", b.DocumentID).
		Float64("jaccard", jaccard).
		Str("level", result.Label).
		Bool("plagiarized", result.IsPlagiarized).
		Msg("Fingerprints compared")

	return result
}

// CompareAgainstMultiple compares the target against every other fingerprint
// (self excluded by document identity), sorted by descending percentage.
func (c *Comparator) CompareAgainstMultiple(target *models.DocumentFingerprint, others []*models.DocumentFingerprint, threshold float64) []models.ComparisonResult {
	results := make([]models.ComparisonResult, 0, len(others))
	for _, other := range others {
		if other.DocumentID == target.DocumentID {
			continue
		}
		results = append(results, c.CompareFingerprints(target, other, threshold))
	}

	sortByPercentage(results)
	return results
}

// CompareAll scores every unique unordered pair over the input: exactly
// n*(n-1)/2 comparisons, sorted by descending percentage. Tie order is not
// guaranteed.
func (c *Comparator) CompareAll(fingerprints []*models.DocumentFingerprint, threshold float64) []models.ComparisonResult {
	n := len(fingerprints)
	results := make([]models.ComparisonResult, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			results = append(results, c.CompareFingerprints(fingerprints[i], fingerprints[j], threshold))
		}
	}

	sortByPercentage(results)
	return results
}

func sortByPercentage(results []models.ComparisonResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Percentage > results[j].Percentage
	})
}
