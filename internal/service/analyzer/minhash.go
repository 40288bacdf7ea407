package analyzer

import (
	"errors"
	"math"
	"strconv"
)

// ErrSignatureLength is returned when two MinHash signatures of different
// lengths are compared. Such signatures are incomparable; estimating a ratio
// anyway would silently mislead.
var ErrSignatureLength = errors.New("minhash signatures have different lengths")

// MinHashSignature computes a fixed-length vector of per-seed minimum hashes
// over the elements. Seeds are realized by prefixing the seed index to each
// element before hashing, so the signature is fully deterministic. An empty
// element set leaves every slot at the maximum value.
func MinHashSignature(elements []string, numHashes int) []uint32 {
	if numHashes <= 0 {
		return nil
	}

	sig := make([]uint32, numHashes)
	for i := range sig {
		sig[i] = math.MaxUint32
	}

	for i := 0; i < numHashes; i++ {
		seed := strconv.Itoa(i)
		for _, el := range elements {
			h := HashShingle(seed + ":" + el)
			if h < sig[i] {
				sig[i] = h
			}
		}
	}

	return sig
}

// EstimateSignatureSimilarity approximates the Jaccard index of the
// underlying sets as the fraction of matching signature slots.
func EstimateSignatureSimilarity(a, b []uint32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrSignatureLength
	}
	if len(a) == 0 {
		return 0, nil
	}

	matches := 0
	for i := range a {
		if a[i] == b[i] {
			matches++
		}
	}

	return float64(matches) / float64(len(a)), nil
}
