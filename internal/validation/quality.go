// Package validation runs writing-quality heuristics over resume text.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Resume length thresholds in words.
const (
	MinResumeWords = 300
	MaxResumeWords = 1000
)

// WeakVerbs are action verbs that undersell an accomplishment.
var WeakVerbs = []string{"helped", "worked", "assisted", "participated", "contributed", "supported"}

var (
	passivePattern    = regexp.MustCompile(`(?i)\b(?:is|was|were|be|been|being|are|am)\b\s+\w+ed\b`)
	quantifiedPattern = regexp.MustCompile(`\b\d+[%$]?\b`)
	lowercaseStart    = regexp.MustCompile(`^[a-z]`)
	repeatedSpace     = regexp.MustCompile(`\s{2,}`)
	weakVerbPatterns  = compileWordPatterns(WeakVerbs)
)

func compileWordPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

// CountPassiveVoice counts "to be" + past-participle phrases.
func CountPassiveVoice(text string) int {
	return len(passivePattern.FindAllStringIndex(text, -1))
}

// DetectWeakVerbs returns the weak verbs used in text, in WeakVerbs order.
func DetectWeakVerbs(text string) []string {
	found := []string{}
	for i, re := range weakVerbPatterns {
		if re.MatchString(text) {
			found = append(found, WeakVerbs[i])
		}
	}
	return found
}

// HasQuantifiedAchievements reports whether text contains any number.
func HasQuantifiedAchievements(text string) bool {
	return quantifiedPattern.MatchString(text)
}

// CheckFormattingConsistency flags lines that start in lowercase or contain
// runs of whitespace. All-caps lines are skipped.
func CheckFormattingConsistency(text string) []string {
	issues := []string{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isUpper(line) {
			continue
		}
		if lowercaseStart.MatchString(line) {
			issues = append(issues, fmt.Sprintf("Line doesn't start with a capital: '%s'", trimmed))
		}
		if repeatedSpace.MatchString(line) {
			issues = append(issues, fmt.Sprintf("Inconsistent spacing in: '%s'", trimmed))
		}
	}
	return issues
}

// CheckResumeLength grades the overall word count of a resume.
func CheckResumeLength(text string) types.LengthCheck {
	words := parsing.WordCount(text)
	switch {
	case words < MinResumeWords:
		return types.LengthCheck{
			WordCount: words,
			Verdict:   types.LengthTooShort,
			Message:   "Resume is too short. Consider adding more content.",
		}
	case words > MaxResumeWords:
		return types.LengthCheck{
			WordCount: words,
			Verdict:   types.LengthTooLong,
			Message:   "Resume is too long. Try to condense it to 1-2 pages.",
		}
	default:
		return types.LengthCheck{
			WordCount: words,
			Verdict:   types.LengthOK,
			Message:   "Resume length looks good.",
		}
	}
}

// CheckQuality runs the text heuristics on one section. Readability and
// grammar are filled in by their own collaborators.
func CheckQuality(text string) types.QualityReport {
	return types.QualityReport{
		PassiveSentences: CountPassiveVoice(text),
		WeakVerbs:        DetectWeakVerbs(text),
		Quantified:       HasQuantifiedAchievements(text),
		FormattingIssues: CheckFormattingConsistency(text),
	}
}

// isUpper reports whether s has at least one cased letter and no lowercase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
