package analyzer

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// stopWords is the closed set of English function words dropped when
// stop-word removal is enabled.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "have": {}, "he": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {},
	"they": {}, "this": {}, "to": {}, "was": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "who": {}, "will": {}, "with": {},
}

// Normalize lowercases text, replaces every run of non-word characters with a
// single space, collapses whitespace and trims the ends. It is pure and
// total: empty in, empty out. Applying it twice yields the same result.
func Normalize(text string) string {
	t := strings.ToLower(text)
	t = nonWordRe.ReplaceAllString(t, " ")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Tokenize normalizes text and splits it into words, dropping empty tokens.
func Tokenize(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}

	parts := strings.Split(norm, " ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}

	return tokens
}

// RemoveStopWords filters common English function words out of the text,
// preserving the order of the remaining tokens.
func RemoveStopWords(text string) string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return ""
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := stopWords[tok]; !ok {
			kept = append(kept, tok)
		}
	}

	return strings.Join(kept, " ")
}
