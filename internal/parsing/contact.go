package parsing

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const nameCandidateLines = 5

var (
	nameExcludePattern = regexp.MustCompile(`@|https?://|\d`)
	emailPattern       = regexp.MustCompile(`\b[\w.-]+?@\w+?\.\w+?\b`)
	phonePattern       = regexp.MustCompile(`\+?\d[\d\s()-]{8,}\d`)
	linkedInPattern    = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+`)
	gitHubPattern      = regexp.MustCompile(`https?://(?:www\.)?github\.com/[A-Za-z0-9_-]+`)
	anyURLPattern      = regexp.MustCompile(`https?://\S+`)
)

// ExtractIdentity pulls contact details out of raw resume text. Each field is
// nil when nothing matches; extraction never fails.
func ExtractIdentity(text string) types.IdentityInfo {
	return types.IdentityInfo{
		Name:      extractName(text),
		Email:     firstMatch(emailPattern, text),
		Phone:     firstMatch(phonePattern, text),
		LinkedIn:  firstMatch(linkedInPattern, text),
		GitHub:    firstMatch(gitHubPattern, text),
		Portfolio: extractPortfolio(text),
	}
}

// extractName returns the first of the leading non-empty lines that carries
// no email marker, URL, or digit.
func extractName(text string) *string {
	checked := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if checked == nameCandidateLines {
			break
		}
		checked++
		if !nameExcludePattern.MatchString(line) {
			return &line
		}
	}
	return nil
}

func extractPortfolio(text string) *string {
	for _, candidate := range anyURLPattern.FindAllString(text, -1) {
		if isProfileHost(candidate) {
			continue
		}
		c := candidate
		return &c
	}
	return nil
}

func isProfileHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == "linkedin.com" || host == "github.com"
}

func firstMatch(re *regexp.Regexp, text string) *string {
	m := re.FindString(text)
	if m == "" {
		return nil
	}
	return &m
}
