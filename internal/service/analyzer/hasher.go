package analyzer

import (
	"strings"
)

// FNV-1a 32-bit constants. The per-character XOR-then-multiply order and the
// uint32 wraparound must stay bit-exact so fingerprints are reproducible
// across runs and machines.
const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// Polynomial rolling hash constants (alternate family).
const (
	polyBase uint64 = 31
	polyMod  uint64 = 1_000_000_009
)

const (
	AlgorithmFNV1a      = "fnv1a"
	AlgorithmPolynomial = "polynomial"
)

// HashShingle maps a shingle to an unsigned 32-bit fingerprint using FNV-1a.
func HashShingle(shingle string) uint32 {
	h := fnvOffset32
	for _, r := range shingle {
		h ^= uint32(r)
		h *= fnvPrime32
	}
	return h
}

// PolynomialHash is the alternate base-31 rolling hash. The two families are
// not interchangeable within one fingerprint set.
func PolynomialHash(shingle string) uint32 {
	var h uint64
	var p uint64 = 1
	for _, r := range shingle {
		h = (h + uint64(r)*p) % polyMod
		p = (p * polyBase) % polyMod
	}
	return uint32(h)
}

// Hasher produces fingerprint sets with a single, fixed hash function.
type Hasher struct {
	algorithm string
	hash      func(string) uint32
}

// NewHasher selects the hash family by name. Unknown names fall back to
// FNV-1a, matching the default fingerprinting mode.
func NewHasher(algorithm string) *Hasher {
	switch strings.ToLower(algorithm) {
	case AlgorithmPolynomial:
		return &Hasher{algorithm: AlgorithmPolynomial, hash: PolynomialHash}
	default:
		return &Hasher{algorithm: AlgorithmFNV1a, hash: HashShingle}
	}
}

func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Hash applies the configured hash function to one shingle.
func (h *Hasher) Hash(shingle string) uint32 {
	return h.hash(shingle)
}

// Fingerprints hashes every shingle into a deduplicated set. This is the
// default, no-winnowing mode.
func (h *Hasher) Fingerprints(shingles []string) map[uint32]struct{} {
	set := make(map[uint32]struct{}, len(shingles))
	for _, s := range shingles {
		set[h.hash(s)] = struct{}{}
	}
	return set
}

// WinnowingFingerprints hashes the shingles in order, then slides a window of
// windowSize consecutive hash values and keeps the minimum of each window.
// Only the value matters for ties; the set absorbs duplicates. An input with
// fewer shingles than windowSize yields an empty set. The selection bounds
// the set cardinality to roughly len(shingles)/windowSize while guaranteeing
// that any run of windowSize or more shared shingles between two documents
// leaves at least one common fingerprint.
func (h *Hasher) WinnowingFingerprints(shingles []string, windowSize int) map[uint32]struct{} {
	set := make(map[uint32]struct{})
	if windowSize <= 0 || len(shingles) < windowSize {
		return set
	}

	hashes := make([]uint32, len(shingles))
	for i, s := range shingles {
		hashes[i] = h.hash(s)
	}

	for i := 0; i+windowSize <= len(hashes); i++ {
		min := hashes[i]
		for _, v := range hashes[i+1 : i+windowSize] {
			if v < min {
				min = v
			}
		}
		set[min] = struct{}{}
	}

	return set
}
