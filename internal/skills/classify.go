// Package skills tags known hard and soft skills found in resume text.
package skills

import (
	"sort"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/vocab"
)

// Classifier tags skills from two closed vocabularies.
type Classifier struct {
	Hard vocab.Matcher
	Soft vocab.Matcher
}

// NewClassifier returns a Classifier. Nil matchers fall back to the built-in
// skill lists.
func NewClassifier(hard, soft vocab.Matcher) *Classifier {
	if hard == nil {
		hard = vocab.HardSkills()
	}
	if soft == nil {
		soft = vocab.SoftSkills()
	}
	return &Classifier{Hard: hard, Soft: soft}
}

// Classify returns the hard and soft skills whose terms occur in text.
// Matching is substring based on the lowercased text. Results are deduplicated
// and sorted.
func (c *Classifier) Classify(text string) types.SkillSet {
	return types.SkillSet{
		Hard: uniqueSorted(c.Hard.Matches(text)),
		Soft: uniqueSorted(c.Soft.Matches(text)),
	}
}

// Classify tags text against the built-in skill lists.
func Classify(text string) types.SkillSet {
	return NewClassifier(nil, nil).Classify(text)
}

func uniqueSorted(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
