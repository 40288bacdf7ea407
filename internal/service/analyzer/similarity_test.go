package analyzer

import (
	"math"
	"testing"

	"github.com/simcheck/detection-service/internal/models"
)

func makeSet(values ...uint32) map[uint32]struct{} {
	set := make(map[uint32]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func TestSetOperations(t *testing.T) {
	a := makeSet(1, 2, 3, 4)
	b := makeSet(3, 4, 5)

	if got := len(Intersection(a, b)); got != 2 {
		t.Errorf("|A∩B| = %d, want 2", got)
	}
	if got := len(Union(a, b)); got != 5 {
		t.Errorf("|A∪B| = %d, want 5", got)
	}
	if got := len(Difference(a, b)); got != 2 {
		t.Errorf("|A\\B| = %d, want 2", got)
	}
}

func TestSetAlgebraIdentity(t *testing.T) {
	// |A∩B| + |A\B| == |A| for all finite sets.
	cases := []struct{ a, b map[uint32]struct{} }{
		{makeSet(1, 2, 3), makeSet(2, 3, 4)},
		{makeSet(), makeSet(1)},
		{makeSet(1, 2), makeSet()},
		{makeSet(7), makeSet(7)},
	}

	for _, c := range cases {
		inter := len(Intersection(c.a, c.b))
		diff := len(Difference(c.a, c.b))
		if inter+diff != len(c.a) {
			t.Errorf("|A∩B|+|A\\B| = %d, want |A| = %d", inter+diff, len(c.a))
		}
	}
}

func TestCoefficients(t *testing.T) {
	a := makeSet(1, 2, 3, 4)
	b := makeSet(3, 4, 5, 6)

	if got := Jaccard(a, b); got != 2.0/6.0 {
		t.Errorf("Jaccard = %v, want %v", got, 2.0/6.0)
	}
	if got := Overlap(a, b); got != 0.5 {
		t.Errorf("Overlap = %v, want 0.5", got)
	}
	if got := Cosine(a, b); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Cosine = %v, want 0.5", got)
	}
	if got := Dice(a, b); got != 0.5 {
		t.Errorf("Dice = %v, want 0.5", got)
	}
}

func TestCoefficients_Symmetry(t *testing.T) {
	a := makeSet(1, 2, 3)
	b := makeSet(2, 3, 4, 5, 6)

	if Jaccard(a, b) != Jaccard(b, a) {
		t.Error("Jaccard not symmetric")
	}
	if Cosine(a, b) != Cosine(b, a) {
		t.Error("Cosine not symmetric")
	}
	if Overlap(a, b) != Overlap(b, a) {
		t.Error("Overlap not symmetric")
	}
	if Dice(a, b) != Dice(b, a) {
		t.Error("Dice not symmetric")
	}
}

func TestCoefficients_EmptySetPolicy(t *testing.T) {
	empty := makeSet()
	nonEmpty := makeSet(1, 2)

	// Two empty documents are identical under Jaccard and Dice.
	if got := Jaccard(empty, empty); got != 1.0 {
		t.Errorf("Jaccard(∅,∅) = %v, want 1.0", got)
	}
	if got := Dice(empty, empty); got != 1.0 {
		t.Errorf("Dice(∅,∅) = %v, want 1.0", got)
	}

	// Overlap and Cosine define any empty side as zero similarity. This
	// asymmetry with the Jaccard rule is intentional.
	if got := Overlap(empty, empty); got != 0 {
		t.Errorf("Overlap(∅,∅) = %v, want 0", got)
	}
	if got := Overlap(empty, nonEmpty); got != 0 {
		t.Errorf("Overlap(∅,A) = %v, want 0", got)
	}
	if got := Cosine(empty, empty); got != 0 {
		t.Errorf("Cosine(∅,∅) = %v, want 0", got)
	}

	if got := Jaccard(empty, nonEmpty); got != 0 {
		t.Errorf("Jaccard(∅,A) = %v, want 0", got)
	}
}

func TestJaccard_SelfIdentity(t *testing.T) {
	a := makeSet(10, 20, 30)
	if got := Jaccard(a, a); got != 1.0 {
		t.Errorf("Jaccard(A,A) = %v, want 1.0", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  models.MatchLevel
	}{
		{1.0, models.MatchLevelVeryHigh},
		{0.8, models.MatchLevelVeryHigh},
		{0.79, models.MatchLevelHigh},
		{0.6, models.MatchLevelHigh},
		{0.59, models.MatchLevelMedium},
		{0.4, models.MatchLevelMedium},
		{0.39, models.MatchLevelLow},
		{0.2, models.MatchLevelLow},
		{0.19, models.MatchLevelNone},
		{0.0, models.MatchLevelNone},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestCommonShingles(t *testing.T) {
	s1 := []string{"ab", "bc", "cd", "ab"}
	s2 := []string{"cd", "xy", "ab"}

	common := CommonShingles(s1, s2)
	if len(common) != 2 {
		t.Fatalf("expected 2 common shingles, got %d", len(common))
	}

	// Emission follows first-occurrence order in the first sequence.
	if common[0].Shingle != "ab" || common[1].Shingle != "cd" {
		t.Errorf("unexpected order: %q, %q", common[0].Shingle, common[1].Shingle)
	}

	if got := common[0].PositionsA; len(got) != 2 || got[0] != 0 || got[1] != 3 {
		t.Errorf("positions of %q in first doc = %v, want [0 3]", "ab", got)
	}
	if got := common[0].PositionsB; len(got) != 1 || got[0] != 2 {
		t.Errorf("positions of %q in second doc = %v, want [2]", "ab", got)
	}
}

func TestCommonShingles_NoOverlap(t *testing.T) {
	if common := CommonShingles([]string{"aa"}, []string{"bb"}); len(common) != 0 {
		t.Errorf("expected no common shingles, got %v", common)
	}
}
