package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// MinContentLength is the shortest posting text trusted from a plain HTTP
// fetch. Anything shorter is usually a JavaScript shell.
const MinContentLength = 500

// ShouldUseBrowser reports whether extracted text is too short to trust.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// consentButtons are clicked when present so banners do not cover the posting.
var consentButtons = `button[id*="accept"], button[class*="accept"], button[aria-label*="Accept"]`

// ChromeRenderer renders job postings in headless Chrome. Chrome or Chromium
// must be installed; ExecPath selects a specific binary.
type ChromeRenderer struct {
	ExecPath string
	Timeout  time.Duration
	// Settle bounds the wait for the posting body to appear once the page loaded.
	Settle time.Duration
	Logger zerolog.Logger
}

// NewChromeRenderer returns a renderer with the default fetch timeout.
func NewChromeRenderer(logger zerolog.Logger) *ChromeRenderer {
	return &ChromeRenderer{Timeout: DefaultTimeout, Settle: 5 * time.Second, Logger: logger}
}

func (r *ChromeRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(DefaultUserAgent),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	return opts
}

// Render loads rawURL and returns the document HTML once the platform's
// posting container is visible, or after Settle when it never appears.
func (r *ChromeRenderer) Render(ctx context.Context, rawURL string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	platform := DetectPlatform(rawURL)
	posting := strings.Join(PlatformContentSelectors(platform), ", ")
	start := time.Now()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_ = chromedp.Click(consentButtons, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, r.Settle)
			defer cancel()
			if err := chromedp.WaitVisible(posting, chromedp.ByQuery).Do(waitCtx); err != nil {
				r.Logger.Debug().Str("platform", string(platform)).Msg("posting container not found, using page as loaded")
			}
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	r.Logger.Debug().
		Str("url", rawURL).
		Str("platform", string(platform)).
		Int("bytes", len(html)).
		Dur("elapsed", time.Since(start)).
		Msg("rendered job posting")
	return html, nil
}
