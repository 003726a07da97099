// Package fetch retrieves job postings over HTTP and reduces them to plain text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeAnalyzer/1.0)"

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 5 << 20

// Result holds the raw content of a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Page is a job posting reduced to its main text.
type Page struct {
	URL      string
	Platform Platform
	Text     string
	Rendered bool
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Renderer produces the final HTML of a page that needs JavaScript.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Client fetches job postings.
type Client struct {
	HTTP         *http.Client
	UserAgent    string
	Headers      map[string]string
	MaxBodyBytes int64
	// Renderer is used when the plain HTTP response yields too little text.
	// Nil disables the fallback.
	Renderer Renderer
	Logger   zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTP = hc }
}

// WithRenderer enables the headless rendering fallback.
func WithRenderer(r Renderer) Option {
	return func(c *Client) { c.Renderer = r }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

// WithHeader adds a request header.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[key] = value
	}
}

// NewClient returns a Client with default timeout and user agent.
func NewClient(opts ...Option) *Client {
	c := &Client{
		HTTP:         &http.Client{Timeout: DefaultTimeout},
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves the HTML at rawURL. On a non-200 status the Result is
// returned together with an error.
func (c *Client) Get(ctx context.Context, rawURL string) (*Result, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.UserAgent)
	for key, value := range c.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         rawURL,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	c.Logger.Debug().Str("url", rawURL).Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("fetched page")

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// JobDescription fetches a job posting and extracts its main text using
// platform-specific selectors. When the text is shorter than MinContentLength
// and a Renderer is configured, the page is rendered and extracted again; a
// rendering failure keeps the HTTP text.
func (c *Client) JobDescription(ctx context.Context, rawURL string) (*Page, error) {
	platform := DetectPlatform(rawURL)
	log := c.Logger.With().Str("url", rawURL).Str("platform", string(platform)).Logger()

	result, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	contentSelectors := PlatformContentSelectors(platform)
	noiseSelectors := PlatformNoiseSelectors(platform)

	text, err := ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "content extraction failed", Cause: err}
	}

	page := &Page{URL: rawURL, Platform: platform, Text: text}
	if c.Renderer == nil || !ShouldUseBrowser(text) {
		return page, nil
	}

	log.Debug().Int("chars", len(text)).Msg("content too short, rendering page")
	html, err := c.Renderer.Render(ctx, rawURL)
	if err != nil {
		log.Warn().Err(err).Msg("rendering failed, using HTTP content")
		return page, nil
	}
	rendered, err := ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		log.Warn().Err(err).Msg("rendered content extraction failed, using HTTP content")
		return page, nil
	}
	page.Text = rendered
	page.Rendered = true
	return page, nil
}

// ExtractMainText parses HTML and returns the main body text.
// It removes noise elements using noiseSelectors, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()

	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return cleanWhitespace(mainContent.Text()), nil
}

// JobPostingSelectors returns selectors optimized for job board pages.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
