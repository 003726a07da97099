package grammar

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/types"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	vowelGroups   = regexp.MustCompile(`[aeiouy]+`)
	edSuffix      = regexp.MustCompile(`[^td]ed$`)
)

// Readability computes the Flesch reading ease of text and a school grade
// label from the Flesch-Kincaid grade. Text without words yields a zero value.
func Readability(text string) types.Readability {
	tokens := words(text)
	if len(tokens) == 0 {
		return types.Readability{}
	}

	syllables := 0
	for _, w := range tokens {
		syllables += CountSyllables(w)
	}

	wps := float64(len(tokens)) / float64(countSentences(text))
	spw := float64(syllables) / float64(len(tokens))

	flesch := 206.835 - 1.015*wps - 84.6*spw
	kincaid := 0.39*wps + 11.8*spw - 15.59

	return types.Readability{
		FleschScore: math.Round(flesch*100) / 100,
		GradeLevel:  GradeLabel(kincaid),
	}
}

// GradeLabel renders a grade such as 9.4 as "9th and 10th grade". Grades
// below one are reported as the first grade.
func GradeLabel(grade float64) string {
	n := int(math.Floor(grade))
	if n < 1 {
		n = 1
	}
	return fmt.Sprintf("%s and %s grade", ordinal(n), ordinal(n+1))
}

// CountSyllables estimates syllables from vowel groups, discounting a silent
// trailing "e" and "ed". Every word has at least one.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	n := len(vowelGroups.FindAllString(word, -1))
	switch {
	case n > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le"):
		n--
	case n > 1 && edSuffix.MatchString(word):
		n--
	}
	if n < 1 {
		return 1
	}
	return n
}

func words(text string) []string {
	var out []string
	for _, field := range strings.Fields(text) {
		w := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
				return r
			}
			return -1
		}, field)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func countSentences(text string) int {
	n := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.IndexFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
