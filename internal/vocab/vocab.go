// Package vocab provides fixed-vocabulary substring matching used for section headers and skills.
package vocab

import (
	"strings"
)

// Matcher reports which vocabulary terms occur in a piece of text.
type Matcher interface {
	// Contains reports whether any term occurs in text.
	Contains(text string) bool
	// Matches returns every term that occurs in text, in vocabulary order.
	Matches(text string) []string
	// Terms returns the vocabulary.
	Terms() []string
}

// List is a Matcher over a closed list of lowercase terms.
// Matching is plain substring search on the lowercased text; multi-word terms
// are not checked for word boundaries.
type List struct {
	terms []string
}

// NewList builds a List from terms. Terms are lowercased and trimmed; empty
// terms and duplicates are dropped while preserving first-seen order.
func NewList(terms ...string) *List {
	seen := make(map[string]struct{}, len(terms))
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		cleaned = append(cleaned, t)
	}
	return &List{terms: cleaned}
}

// Contains reports whether any term occurs in text.
func (l *List) Contains(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range l.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Matches returns every term that occurs in text, in vocabulary order.
func (l *List) Matches(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range l.terms {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// Terms returns a copy of the vocabulary.
func (l *List) Terms() []string {
	out := make([]string, len(l.terms))
	copy(out, l.terms)
	return out
}

// Extend returns a new List holding the receiver's terms followed by extra.
func (l *List) Extend(extra ...string) *List {
	return NewList(append(l.Terms(), extra...)...)
}

// OrDefault returns a List built from terms, or def when terms is empty.
func OrDefault(terms []string, def *List) *List {
	if len(terms) == 0 {
		return def
	}
	return NewList(terms...)
}
