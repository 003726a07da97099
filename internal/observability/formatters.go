// Package observability provides formatted text output of analysis reports for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// notFound is shown for absent optional fields
	notFound = "not found"
)

// Printer handles formatted text output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func orNotFound(s *string) string {
	if s == nil {
		return notFound
	}
	return *s
}

// listOrNone joins items, capped at maxItemsToShow.
func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	if len(items) > maxItemsToShow {
		return fmt.Sprintf("%s ... and %d more", strings.Join(items[:maxItemsToShow], ", "), len(items)-maxItemsToShow)
	}
	return strings.Join(items, ", ")
}

// PrintReport prints every part of a report.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}
	p.PrintIdentity(report.Identity)
	p.PrintLength(report.Length)
	for _, s := range report.Sections {
		p.PrintSection(s)
	}
	if len(report.Sections) == 0 {
		p.printBox("SECTIONS", "No section headers found")
	}
	p.PrintRole(report.Role)
	p.PrintATS(report.ATS)
	p.PrintMatch(report.Match)
}

// PrintIdentity outputs the contact details, marking absent ones.
func (p *Printer) PrintIdentity(id types.IdentityInfo) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", orNotFound(id.Name)))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", orNotFound(id.Email)))
	sb.WriteString(fmt.Sprintf("Phone:     %s\n", orNotFound(id.Phone)))
	sb.WriteString(fmt.Sprintf("LinkedIn:  %s\n", orNotFound(id.LinkedIn)))
	sb.WriteString(fmt.Sprintf("GitHub:    %s\n", orNotFound(id.GitHub)))
	sb.WriteString(fmt.Sprintf("Portfolio: %s", orNotFound(id.Portfolio)))

	p.printBox("CONTACT INFORMATION", sb.String())
}

// PrintLength outputs the resume length verdict.
func (p *Printer) PrintLength(length types.LengthCheck) {
	p.printBox("RESUME LENGTH", fmt.Sprintf("Words: %d\n%s", length.WordCount, length.Message))
}

// PrintSection outputs the analysis of one section.
func (p *Printer) PrintSection(s types.SectionReport) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:         %.2f / 100\n", s.Score))
	sb.WriteString(fmt.Sprintf("Hard skills:   %s\n", listOrNone(s.Skills.Hard)))
	sb.WriteString(fmt.Sprintf("Soft skills:   %s\n", listOrNone(s.Skills.Soft)))

	if len(s.Timeline.Years) > 0 {
		sb.WriteString(fmt.Sprintf("Chronological: %t\n", s.Timeline.Chronological))
		for _, gap := range s.Timeline.Gaps {
			sb.WriteString(fmt.Sprintf("  • Gap between %d and %d\n", gap.From, gap.To))
		}
	}

	q := s.Quality
	sb.WriteString(fmt.Sprintf("Passive voice: %d\n", q.PassiveSentences))
	sb.WriteString(fmt.Sprintf("Weak verbs:    %s\n", listOrNone(q.WeakVerbs)))
	sb.WriteString(fmt.Sprintf("Quantified:    %t\n", q.Quantified))
	if q.Readability.GradeLevel != "" {
		sb.WriteString(fmt.Sprintf("Readability:   %.2f (%s)\n", q.Readability.FleschScore, q.Readability.GradeLevel))
	}
	if q.Grammar != nil {
		sb.WriteString(fmt.Sprintf("Grammar:       %d issue(s)\n", q.Grammar.ErrorCount))
		count := min(len(q.Grammar.Suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", q.Grammar.Suggestions[i]))
		}
	}
	if len(q.FormattingIssues) > 0 {
		sb.WriteString("Formatting:\n")
		count := min(len(q.FormattingIssues), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", q.FormattingIssues[i]))
		}
		if len(q.FormattingIssues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(q.FormattingIssues)-maxItemsToShow))
		}
	}

	p.printBox("SECTION: "+strings.ToUpper(s.Label), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRole outputs the predicted role and the runner-up roles.
func (p *Printer) PrintRole(role *types.RolePrediction) {
	if role == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Predicted: %s (%.2f%%)\n\n", role.Role, role.Confidence))
	for i, r := range role.TopRoles {
		sb.WriteString(fmt.Sprintf("#%d  %-30s %6.2f%%\n", i+1, r.Role, r.Confidence))
	}
	if role.Explanation != "" {
		sb.WriteString("\n")
		sb.WriteString(role.Explanation)
	}

	p.printBox("ROLE PREDICTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATS outputs the applicant-tracking-system checks.
func (p *Printer) PrintATS(report *types.ATSReport) {
	if report == nil {
		return
	}

	status := func(ok bool) string {
		if ok {
			return "✅"
		}
		return "⚠️"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s File format: %s\n", status(report.FileOK), report.Extension))
	sb.WriteString(fmt.Sprintf("%s Single column layout\n", status(!report.MultiColumn)))
	sb.WriteString(fmt.Sprintf("%s No tables\n", status(!report.TablesPresent)))
	sb.WriteString(fmt.Sprintf("Headers found:   %s\n", listOrNone(report.HeadersFound)))
	sb.WriteString(fmt.Sprintf("Headers missing: %s", listOrNone(report.HeadersMissing)))

	p.printBox("ATS COMPATIBILITY", sb.String())
}

// PrintMatch outputs the job match score and the missing keywords.
func (p *Printer) PrintMatch(match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score: %.2f%%\n", match.Score))
	if len(match.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range match.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs the raw segmentation of a resume, one box per section.
func (p *Printer) PrintSections(sections parsing.Sections) {
	if len(sections) == 0 {
		p.printBox("SECTIONS", "No section headers found")
		return
	}
	for _, s := range sections {
		content := s.Content
		if content == "" {
			content = "(empty)"
		}
		p.printBox("SECTION: "+strings.ToUpper(s.Label), content)
	}
}
