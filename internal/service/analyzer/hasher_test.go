package analyzer

import (
	"hash/fnv"
	"testing"
)

func TestHashShingle_MatchesFNV1a(t *testing.T) {
	// For ASCII input the per-character loop must agree byte for byte with
	// the reference FNV-1a implementation.
	inputs := []string{"", "a", "abc", "the cat sat on the mat", "12345", "hello world"}
	for _, in := range inputs {
		ref := fnv.New32a()
		ref.Write([]byte(in))
		if got, want := HashShingle(in), ref.Sum32(); got != want {
			t.Errorf("HashShingle(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestHashShingle_Deterministic(t *testing.T) {
	inputs := []string{"", "a", "shingle", "the quick brown fox"}
	for _, in := range inputs {
		if HashShingle(in) != HashShingle(in) {
			t.Errorf("HashShingle(%q) not deterministic", in)
		}
	}
}

func TestPolynomialHash(t *testing.T) {
	if PolynomialHash("abc") != PolynomialHash("abc") {
		t.Error("PolynomialHash not deterministic")
	}
	if PolynomialHash("abc") == PolynomialHash("abd") {
		t.Error("PolynomialHash collided on near-identical inputs")
	}
	if PolynomialHash("") != 0 {
		t.Errorf("PolynomialHash(\"\") = %d, want 0", PolynomialHash(""))
	}
}

func TestNewHasher_Algorithms(t *testing.T) {
	if got := NewHasher("polynomial").Algorithm(); got != AlgorithmPolynomial {
		t.Errorf("algorithm = %q, want %q", got, AlgorithmPolynomial)
	}
	if got := NewHasher("fnv1a").Algorithm(); got != AlgorithmFNV1a {
		t.Errorf("algorithm = %q, want %q", got, AlgorithmFNV1a)
	}
	// Unknown names fall back to the default family.
	if got := NewHasher("sha256").Algorithm(); got != AlgorithmFNV1a {
		t.Errorf("fallback algorithm = %q, want %q", got, AlgorithmFNV1a)
	}
}

func TestFingerprints_Dedupes(t *testing.T) {
	h := NewHasher(AlgorithmFNV1a)
	set := h.Fingerprints([]string{"abc", "def", "abc", "abc"})
	if len(set) != 2 {
		t.Errorf("expected 2 distinct fingerprints, got %d", len(set))
	}
}

func TestFingerprints_Empty(t *testing.T) {
	h := NewHasher(AlgorithmFNV1a)
	if set := h.Fingerprints(nil); len(set) != 0 {
		t.Errorf("expected empty set, got %d entries", len(set))
	}
}

func TestWinnowingFingerprints_BoundsCardinality(t *testing.T) {
	h := NewHasher(AlgorithmFNV1a)
	shingles := KGrams("the quick brown fox jumps over the lazy dog and keeps on running", 5)
	window := 4

	full := h.Fingerprints(shingles)
	winnowed := h.WinnowingFingerprints(shingles, window)

	if len(winnowed) == 0 {
		t.Fatal("winnowed set is empty for long input")
	}
	if len(winnowed) > len(full) {
		t.Errorf("winnowed set (%d) larger than full set (%d)", len(winnowed), len(full))
	}

	// Every winnowed fingerprint is a real shingle hash.
	for v := range winnowed {
		if _, ok := full[v]; !ok {
			t.Errorf("winnowed value %d not present in full fingerprint set", v)
		}
	}
}

func TestWinnowingFingerprints_SharedRunGuarantee(t *testing.T) {
	// Two documents sharing a contiguous fragment longer than the winnowing
	// window must share at least one fingerprint.
	h := NewHasher(AlgorithmFNV1a)
	window := 4
	shared := "plagiarism detection by document fingerprinting"

	a := KGrams("intro text before the fragment "+shared, 5)
	b := KGrams(shared+" followed by entirely different material", 5)

	setA := h.WinnowingFingerprints(a, window)
	setB := h.WinnowingFingerprints(b, window)

	if len(Intersection(setA, setB)) == 0 {
		t.Error("winnowed sets share no fingerprint despite a long common fragment")
	}
}

func TestWinnowingFingerprints_ShortInput(t *testing.T) {
	h := NewHasher(AlgorithmFNV1a)

	if set := h.WinnowingFingerprints(nil, 4); len(set) != 0 {
		t.Errorf("expected empty set for empty shingles, got %d", len(set))
	}
	// Fewer shingles than the window means no complete window exists.
	if set := h.WinnowingFingerprints([]string{"abc", "bcd"}, 4); len(set) != 0 {
		t.Errorf("expected empty set for short sequence, got %d", len(set))
	}
}

func TestWinnowingFingerprints_Deterministic(t *testing.T) {
	h := NewHasher(AlgorithmFNV1a)
	shingles := KGrams("determinism is load bearing for reproducible comparisons", 5)

	a := h.WinnowingFingerprints(shingles, 4)
	b := h.WinnowingFingerprints(shingles, 4)

	if len(a) != len(b) {
		t.Fatalf("set sizes differ: %d vs %d", len(a), len(b))
	}
	for v := range a {
		if _, ok := b[v]; !ok {
			t.Errorf("value %d missing from second run", v)
		}
	}
}
