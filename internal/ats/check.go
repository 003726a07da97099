// Package ats applies applicant-tracking-system formatting heuristics to a resume.
package ats

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/vocab"
)

const (
	shortLineChars   = 40
	columnLineCutoff = 20
)

// SupportedExtensions are the file types parsers handle reliably.
var SupportedExtensions = []string{".pdf", ".docx"}

var (
	pipeTablePattern = regexp.MustCompile(`\|\s?.+\s?\|`)
	headerPatterns   = compileHeaderPatterns(vocab.StandardATSHeaders)
)

func compileHeaderPatterns(headers []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(headers))
	for i, h := range headers {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(h) + `\b`)
	}
	return patterns
}

// CheckFileFormat reports whether path has a supported extension and returns
// the lowercased extension.
func CheckFileFormat(path string) (bool, string) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true, ext
		}
	}
	return false, ext
}

// DetectColumns reports a likely multi-column layout: many short non-blank lines.
func DetectColumns(text string) bool {
	short := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if utf8.RuneCountInString(line) < shortLineChars {
			short++
		}
	}
	return short > columnLineCutoff
}

// CheckHeaders returns the standard headers present in text, in list order,
// and the missing ones sorted.
func CheckHeaders(text string) (found, missing []string) {
	found = []string{}
	missing = []string{}
	for i, re := range headerPatterns {
		if re.MatchString(text) {
			found = append(found, vocab.StandardATSHeaders[i])
		} else {
			missing = append(missing, vocab.StandardATSHeaders[i])
		}
	}
	sort.Strings(missing)
	return found, missing
}

// DetectTextTables looks for pipe-delimited rows or the word "Table".
func DetectTextTables(text string) bool {
	return pipeTablePattern.MatchString(text) || strings.Contains(text, "Table")
}

// Check runs every heuristic. For .docx files docxTables carries whether the
// document holds a table element; other files fall back to DetectTextTables.
func Check(path, text string, docxTables bool) types.ATSReport {
	ok, ext := CheckFileFormat(path)
	found, missing := CheckHeaders(text)

	tables := DetectTextTables(text)
	if ext == ".docx" {
		tables = docxTables
	}

	return types.ATSReport{
		Extension:      ext,
		FileOK:         ok,
		MultiColumn:    DetectColumns(text),
		TablesPresent:  tables,
		HeadersFound:   found,
		HeadersMissing: missing,
	}
}
