package parsing

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/vocab"
)

// Section is a labeled block of resume text.
type Section struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// Sections is an ordered label -> content mapping. Labels are unique and keep
// the position of their first header line.
type Sections []Section

// Get returns the content stored under label.
func (s Sections) Get(label string) (string, bool) {
	for _, sec := range s {
		if sec.Label == label {
			return sec.Content, true
		}
	}
	return "", false
}

// Labels returns the section labels in document order.
func (s Sections) Labels() []string {
	labels := make([]string, len(s))
	for i, sec := range s {
		labels[i] = sec.Label
	}
	return labels
}

// Map returns the sections as a plain map.
func (s Sections) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, sec := range s {
		m[sec.Label] = sec.Content
	}
	return m
}

// SegmentSections splits raw text into sections. A line whose lowercased,
// trimmed form contains any header term opens a new section keyed by that
// whole line; following lines are collected (trimmed) until the next header.
// Lines before the first header are dropped. A header line seen again resets
// the content of its section. Text without any header yields no sections.
func SegmentSections(text string, headers vocab.Matcher) Sections {
	if headers == nil {
		headers = vocab.SectionHeaders()
	}

	var order []string
	content := make(map[string][]string)
	current := ""
	open := false

	for _, line := range strings.Split(text, "\n") {
		clean := strings.ToLower(strings.TrimSpace(line))
		if clean != "" && headers.Contains(clean) {
			if _, seen := content[clean]; !seen {
				order = append(order, clean)
			}
			content[clean] = []string{}
			current = clean
			open = true
			continue
		}
		if open {
			content[current] = append(content[current], strings.TrimSpace(line))
		}
	}

	sections := make(Sections, 0, len(order))
	for _, label := range order {
		sections = append(sections, Section{
			Label:   label,
			Content: strings.TrimSpace(strings.Join(content[label], "\n")),
		})
	}
	return sections
}
