// Package ingestion turns resume files and job postings into plain text.
package ingestion

import "fmt"

// UnsupportedFileTypeError is returned for file extensions no extractor handles.
type UnsupportedFileTypeError struct {
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Extension == "" {
		return "unsupported file type"
	}
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}

// ExtractionError represents a failure to decode a supported file.
type ExtractionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.Path, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
