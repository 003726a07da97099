package ingestion

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-analyzer/internal/fetch"
)

// PageFetcher retrieves the main text of a job posting.
type PageFetcher interface {
	JobDescription(ctx context.Context, url string) (*fetch.Page, error)
}

// JobDescriptionFromURL fetches a posting and returns its cleaned text.
func JobDescriptionFromURL(ctx context.Context, fetcher PageFetcher, url string) (string, *Metadata, error) {
	page, err := fetcher.JobDescription(ctx, url)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch job description: %w", err)
	}

	text := CleanText(page.Text)
	if text == "" {
		return "", nil, fmt.Errorf("no job description text found at %s", url)
	}

	meta := NewMetadata(text, url)
	meta.Platform = string(page.Platform)
	meta.Rendered = page.Rendered
	return text, meta, nil
}

// JobDescriptionFromFile reads a plain-text job description.
func JobDescriptionFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := CleanText(string(content))
	return text, NewMetadata(text, path), nil
}
