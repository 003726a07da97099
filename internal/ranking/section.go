// Package ranking scores resume sections and matches resumes against job descriptions.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Section score weights. The score is a coarse heuristic:
// (length + skills - penalty) * 50 + 50, clamped to [0, 100].
const (
	lengthSaturationWords = 100.0
	skillSaturationCount  = 10.0
	punctuatedPenalty     = 0.1
	unpunctuatedPenalty   = 0.3
	scoreScale            = 50.0
	scoreOffset           = 50.0
)

// ScoreSection scores a section from its word count, the number of skills
// found in it, and whether it contains sentence punctuation.
func ScoreSection(text string, skills types.SkillSet) float64 {
	words := parsing.WordCount(text)

	lengthComponent := math.Min(float64(words)/lengthSaturationWords, 1.0)
	skillComponent := math.Min(float64(skills.Count())/skillSaturationCount, 1.0)

	penalty := unpunctuatedPenalty
	if words > 0 && strings.Contains(text, ".") {
		penalty = punctuatedPenalty
	}

	score := (lengthComponent+skillComponent-penalty)*scoreScale + scoreOffset
	return round2(clamp(score, 0, 100))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
