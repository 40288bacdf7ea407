package analyzer

import (
	"strings"
)

// KGrams normalizes text and emits every overlapping character window of
// length k. Text shorter than k produces an empty sequence, never an error.
// The output count is always max(0, len-k+1).
func KGrams(text string, k int) []string {
	if k <= 0 {
		return nil
	}

	norm := Normalize(text)
	if len(norm) < k {
		return nil
	}

	grams := make([]string, 0, len(norm)-k+1)
	for i := 0; i+k <= len(norm); i++ {
		grams = append(grams, norm[i:i+k])
	}

	return grams
}

// WordNGrams tokenizes text and emits every overlapping run of n words
// joined by single spaces. Fewer than n words produces an empty sequence.
func WordNGrams(text string, n int) []string {
	if n <= 0 {
		return nil
	}

	words := Tokenize(text)
	if len(words) < n {
		return nil
	}

	grams := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		grams = append(grams, strings.Join(words[i:i+n], " "))
	}

	return grams
}
