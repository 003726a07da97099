// Package experience analyzes the year timeline of a resume section.
package experience

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// yearPattern matches 19xx and 20xx tokens anywhere, including inside longer
// digit runs.
var yearPattern = regexp.MustCompile(`(?:19|20)\d{2}`)

// ExtractYears returns every year token in text in order of appearance.
func ExtractYears(text string) []int {
	matches := yearPattern.FindAllString(text, -1)
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	return years
}

// DetectGaps reports (prior, next) pairs between consecutive distinct years,
// in ascending order, where the two years are more than one year apart.
func DetectGaps(years []int) []types.Gap {
	distinct := uniqueAscending(years)
	gaps := []types.Gap{}
	for i := 1; i < len(distinct); i++ {
		if distinct[i]-distinct[i-1] > 1 {
			gaps = append(gaps, types.Gap{From: distinct[i-1], To: distinct[i]})
		}
	}
	return gaps
}

// IsChronological reports whether years are listed most recent first.
// Repeated years are allowed; an empty sequence is chronological.
func IsChronological(years []int) bool {
	for i := 1; i < len(years); i++ {
		if years[i] > years[i-1] {
			return false
		}
	}
	return true
}

// AnalyzeTimeline extracts the years in text and computes gaps and ordering.
// Gaps use the distinct years; the ordering check uses the raw sequence.
func AnalyzeTimeline(text string) types.Timeline {
	years := ExtractYears(text)
	return types.Timeline{
		Years:         years,
		Gaps:          DetectGaps(years),
		Chronological: IsChronological(years),
	}
}

func uniqueAscending(years []int) []int {
	seen := make(map[int]struct{}, len(years))
	out := make([]int, 0, len(years))
	for _, y := range years {
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}
