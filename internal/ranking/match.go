package ranking

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// MaxMissingKeywords caps the number of reported missing keywords.
const MaxMissingKeywords = 10

// minTermLength is the shortest token counted in similarity vectors.
const minTermLength = 2

// MatchResumeToJob compares a resume against a job description. The score is
// the cosine similarity of stop-word filtered term frequencies, scaled to
// 0-100 and rounded to two decimals. Missing keywords are job description
// tokens absent from the resume, sorted and capped.
func MatchResumeToJob(resume, jobDescription string) types.MatchResult {
	resumeClean := parsing.Normalize(resume)
	jobClean := parsing.Normalize(jobDescription)

	score := 0.0
	if resumeClean != "" && jobClean != "" {
		score = round2(CosineSimilarity(termFrequencies(resumeClean), termFrequencies(jobClean)) * 100)
	}

	missing := MissingKeywords(resumeClean, jobClean)
	return types.MatchResult{
		Score:           score,
		MissingKeywords: missing,
		Suggestions:     Suggestions(missing),
	}
}

// MissingKeywords returns the sorted tokens of job that do not appear in
// resume, capped at MaxMissingKeywords. Both inputs must already be normalized.
func MissingKeywords(resume, job string) []string {
	have := parsing.TokenSet(resume)
	missing := []string{}
	for token := range parsing.TokenSet(job) {
		if _, ok := have[token]; !ok {
			missing = append(missing, token)
		}
	}
	sort.Strings(missing)
	if len(missing) > MaxMissingKeywords {
		missing = missing[:MaxMissingKeywords]
	}
	return missing
}

// Suggestions returns one suggestion per keyword, in the same order.
func Suggestions(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = fmt.Sprintf("Include the keyword '%s' if relevant.", k)
	}
	return out
}

// CosineSimilarity returns the cosine of the angle between two sparse
// frequency vectors, or 0 when either vector is empty.
func CosineSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for term, x := range a {
		normA += float64(x * x)
		if y, ok := b[term]; ok {
			dot += float64(x * y)
		}
	}
	for _, y := range b {
		normB += float64(y * y)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp(dot/(math.Sqrt(normA)*math.Sqrt(normB)), 0, 1)
}

func termFrequencies(normalized string) map[string]int {
	freq := make(map[string]int)
	for _, token := range parsing.Tokens(normalized) {
		if utf8.RuneCountInString(token) < minTermLength || IsStopWord(token) {
			continue
		}
		freq[token]++
	}
	return freq
}
