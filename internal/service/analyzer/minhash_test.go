package analyzer

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestMinHashSignature_Deterministic(t *testing.T) {
	elements := []string{"abc", "bcd", "cde", "def"}

	a := MinHashSignature(elements, 16)
	b := MinHashSignature(elements, 16)

	if !reflect.DeepEqual(a, b) {
		t.Error("signatures differ across calls for identical input")
	}
	if len(a) != 16 {
		t.Errorf("signature length = %d, want 16", len(a))
	}
}

func TestMinHashSignature_IdenticalSets(t *testing.T) {
	elements := []string{"one", "two", "three"}

	sim, err := EstimateSignatureSimilarity(
		MinHashSignature(elements, 32),
		MinHashSignature(elements, 32),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 1.0 {
		t.Errorf("similarity of identical sets = %v, want 1.0", sim)
	}
}

func TestMinHashSignature_EmptyElements(t *testing.T) {
	sig := MinHashSignature(nil, 8)
	for i, v := range sig {
		if v != math.MaxUint32 {
			t.Errorf("slot %d = %d, want MaxUint32 for empty input", i, v)
		}
	}
}

func TestMinHashSignature_NonPositiveCount(t *testing.T) {
	if sig := MinHashSignature([]string{"a"}, 0); sig != nil {
		t.Errorf("expected nil signature for numHashes=0, got %v", sig)
	}
}

func TestEstimateSignatureSimilarity_LengthMismatch(t *testing.T) {
	a := MinHashSignature([]string{"x"}, 8)
	b := MinHashSignature([]string{"x"}, 16)

	_, err := EstimateSignatureSimilarity(a, b)
	if !errors.Is(err, ErrSignatureLength) {
		t.Errorf("expected ErrSignatureLength, got %v", err)
	}
}
