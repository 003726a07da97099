package grammar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/rs/zerolog"
)

const (
	// DefaultLanguage is the language code sent when none is configured.
	DefaultLanguage = "en-US"
	// DefaultTimeout bounds a single check request.
	DefaultTimeout = 20 * time.Second
)

// LanguageToolChecker calls the /v2/check endpoint of a LanguageTool server.
type LanguageToolChecker struct {
	BaseURL  string
	Language string
	HTTP     *http.Client
	Logger   zerolog.Logger
}

// NewLanguageToolChecker returns a checker for the server at baseURL.
func NewLanguageToolChecker(baseURL, language string, logger zerolog.Logger) *LanguageToolChecker {
	if language == "" {
		language = DefaultLanguage
	}
	return &LanguageToolChecker{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Language: language,
		HTTP:     &http.Client{Timeout: DefaultTimeout},
		Logger:   logger,
	}
}

type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
	} `json:"matches"`
}

// Check submits text and maps every match to a suggestion. Blank text is
// not sent.
func (c *LanguageToolChecker) Check(ctx context.Context, text string) (types.GrammarReport, error) {
	report := types.GrammarReport{Suggestions: []string{}}
	if strings.TrimSpace(text) == "" {
		return report, nil
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return report, &ServiceError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return report, &ServiceError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return report, &ServiceError{
			Message:    strings.TrimSpace(string(body)),
			StatusCode: resp.StatusCode,
		}
	}

	var decoded checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return report, &ServiceError{Message: "failed to decode response", Cause: err}
	}

	runes := []rune(text)
	for _, m := range decoded.Matches {
		issue := types.GrammarIssue{
			Message:   m.Message,
			Offset:    m.Offset,
			ErrorText: slice(runes, m.Offset, m.Length),
		}
		for _, r := range m.Replacements {
			issue.Replacements = append(issue.Replacements, r.Value)
		}
		report.Issues = append(report.Issues, issue)
		report.Suggestions = append(report.Suggestions, m.Message)
	}
	report.ErrorCount = len(decoded.Matches)

	c.Logger.Debug().
		Int("matches", report.ErrorCount).
		Dur("duration", time.Since(start)).
		Msg("grammar check complete")

	return report, nil
}

// slice returns runes[offset:offset+length], clipped to the text.
func slice(runes []rune, offset, length int) string {
	if offset < 0 || offset >= len(runes) || length <= 0 {
		return ""
	}
	end := offset + length
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[offset:end])
}
