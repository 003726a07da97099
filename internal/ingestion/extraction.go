package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported resume file extensions.
const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
	ExtTXT  = ".txt"
)

// Document is the plain text of a resume file.
type Document struct {
	Path      string `json:"path,omitempty"`
	Extension string `json:"extension"`
	Text      string `json:"text"`
	// HasTables is set for .docx files whose body contains a table.
	HasTables bool `json:"has_tables"`
}

// Extractor turns a resume file into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Document, error)
	ExtractBytes(ctx context.Context, name string, data []byte) (*Document, error)
}

// FileExtractor decodes PDF, DOCX and plain-text files.
type FileExtractor struct{}

// NewFileExtractor returns an Extractor for PDF, DOCX and plain-text files.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract reads path and decodes it by extension.
func (e *FileExtractor) Extract(ctx context.Context, path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupported(ext) {
		return nil, &UnsupportedFileTypeError{Extension: ext}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Message: "failed to read file", Cause: err}
	}
	return e.ExtractBytes(ctx, path, data)
}

// ExtractBytes decodes data using the extension of name.
func (e *FileExtractor) ExtractBytes(ctx context.Context, name string, data []byte) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := &Document{Path: name, Extension: ext}
	var err error
	switch ext {
	case ExtPDF:
		doc.Text, err = extractPDFText(data)
	case ExtDOCX:
		doc.Text, doc.HasTables, err = extractDocxText(data)
	case ExtTXT:
		if !utf8.Valid(data) {
			err = fmt.Errorf("text is not valid UTF-8")
		}
		doc.Text = string(data)
	default:
		return nil, &UnsupportedFileTypeError{Extension: ext}
	}
	if err != nil {
		return nil, &ExtractionError{Path: name, Message: "failed to decode " + strings.TrimPrefix(ext, "."), Cause: err}
	}

	doc.Text = NormalizeLineEndings(doc.Text)
	return doc, nil
}

// IsSupported reports whether ext (with leading dot) can be extracted.
func IsSupported(ext string) bool {
	switch strings.ToLower(ext) {
	case ExtPDF, ExtDOCX, ExtTXT:
		return true
	}
	return false
}

// extractPDFText concatenates the plain text of every page. The PDF reader
// panics on some malformed files; that is reported as an error.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, bool, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false, fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return DocumentXMLText(doc.Editable().GetContent())
}
