package service

import (
	"strings"
	"unicode/utf8"
)

const (
	// oracleScoreThreshold promotes a non-duplicate verdict when the score alone is high enough
	oracleScoreThreshold = 0.7

	// lexicalDuplicateThreshold is the overlap fraction above which the fallback reports a duplicate
	lexicalDuplicateThreshold = 0.5

	minSignificantTokenLen = 4
)

// significantTokens splits on whitespace and keeps lowercased tokens longer than three characters
func significantTokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minSignificantTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// LexicalOverlap returns the fraction of significant tokens in newText that occur
// as substrings of existingText. It is 0 when newText has no significant tokens.
func LexicalOverlap(newText, existingText string) float64 {
	tokens := significantTokens(newText)
	if len(tokens) == 0 {
		return 0
	}

	existing := strings.ToLower(existingText)
	matched := 0
	for _, token := range tokens {
		if strings.Contains(existing, token) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}
