// Package parsing turns raw resume text into normalized text, labeled sections and contact details.
package parsing

import (
	"regexp"
	"strings"
)

var (
	// urlPattern matches scheme or www-prefixed URLs up to the next whitespace
	urlPattern = regexp.MustCompile(`(?:https?://|www\.)\S*`)
	// nonWordPattern matches anything that is neither a word character nor whitespace
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}]+`)
	// spacePattern matches runs of ASCII or Unicode whitespace
	spacePattern = regexp.MustCompile(`[\s\p{Z}]+`)
)

// Normalize lowercases text, removes URLs and punctuation, and collapses whitespace.
// The classifier and the job matcher both depend on this exact output, so it
// must stay a pure function. Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, " ")
	text = nonWordPattern.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Tokens splits normalized text into its space-separated tokens.
func Tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// TokenSet returns the distinct tokens of normalized text.
func TokenSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(normalized) {
		set[tok] = struct{}{}
	}
	return set
}

// WordCount counts whitespace-separated words in raw text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
