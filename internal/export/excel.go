// Package export writes analysis reports to Excel workbooks.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Sheet names.
const (
	SummarySheet  = "Summary"
	SectionsSheet = "Sections"
	KeywordsSheet = "Keywords"
)

var (
	summaryHeaders = []string{"Source", "Name", "Email", "Phone", "Words", "Length", "Role", "Confidence", "Match Score", "ATS File OK", "Missing Headers"}
	sectionHeaders = []string{"Source", "Section", "Score", "Hard Skills", "Soft Skills", "Gaps", "Chronological", "Passive Voice", "Weak Verbs", "Quantified", "Flesch", "Grade", "Grammar Issues"}
	keywordHeaders = []string{"Source", "Missing Keyword", "Suggestion"}
)

// ExportToExcel writes reports to an .xlsx file at outputPath, adding the
// extension when it is missing.
func ExportToExcel(reports []*types.Report, outputPath string) error {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}

	f, err := build(reports)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(filepath.Clean(outputPath)); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// WriteExcel writes reports as an .xlsx workbook to w.
func WriteExcel(reports []*types.Report, w io.Writer) error {
	f, err := build(reports)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func build(reports []*types.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	for _, name := range []string{SectionsSheet, KeywordsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, styles, reports); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSections(f, styles, reports); err != nil {
		return nil, fmt.Errorf("failed to create sections sheet: %w", err)
	}
	if err := writeKeywords(f, styles, reports); err != nil {
		return nil, fmt.Errorf("failed to create keywords sheet: %w", err)
	}
	return f, nil
}

type styles struct {
	header int
	good   int
	fair   int
	poor   int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	}); err != nil {
		return s, err
	}
	if s.good, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Border: border,
	}); err != nil {
		return s, err
	}
	if s.fair, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
		Border: border,
	}); err != nil {
		return s, err
	}
	s.poor, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Border: border,
	})
	return s, err
}

// scoreStyle color-codes a 0-100 score.
func (s styles) scoreStyle(score float64) int {
	switch {
	case score >= 70:
		return s.good
	case score >= 50:
		return s.fair
	default:
		return s.poor
	}
}

func writeHeader(f *excelize.File, sheet string, s styles, headers []string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, s.header); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleCell(f *excelize.File, sheet string, col, row, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeSummary(f *excelize.File, s styles, reports []*types.Report) error {
	if err := writeHeader(f, SummarySheet, s, summaryHeaders); err != nil {
		return err
	}

	for i, r := range reports {
		row := i + 2
		var role, confidence, match, atsOK, missing interface{} = "", "", "", "", ""
		if r.Role != nil {
			role, confidence = r.Role.Role, r.Role.Confidence
		}
		if r.Match != nil {
			match = r.Match.Score
		}
		if r.ATS != nil {
			atsOK = r.ATS.FileOK
			missing = strings.Join(r.ATS.HeadersMissing, ", ")
		}

		values := []interface{}{
			r.Source,
			deref(r.Identity.Name),
			deref(r.Identity.Email),
			deref(r.Identity.Phone),
			r.Length.WordCount,
			r.Length.Verdict,
			role,
			confidence,
			match,
			atsOK,
			missing,
		}
		if err := writeRow(f, SummarySheet, row, values); err != nil {
			return err
		}
		if r.Match != nil {
			if err := styleCell(f, SummarySheet, 9, row, s.scoreStyle(r.Match.Score)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSections(f *excelize.File, s styles, reports []*types.Report) error {
	if err := writeHeader(f, SectionsSheet, s, sectionHeaders); err != nil {
		return err
	}

	row := 2
	for _, r := range reports {
		for _, sec := range r.Sections {
			gaps := make([]string, len(sec.Timeline.Gaps))
			for i, g := range sec.Timeline.Gaps {
				gaps[i] = fmt.Sprintf("%d-%d", g.From, g.To)
			}
			grammarIssues := interface{}("")
			if sec.Quality.Grammar != nil {
				grammarIssues = sec.Quality.Grammar.ErrorCount
			}

			values := []interface{}{
				r.Source,
				sec.Label,
				sec.Score,
				strings.Join(sec.Skills.Hard, ", "),
				strings.Join(sec.Skills.Soft, ", "),
				strings.Join(gaps, ", "),
				sec.Timeline.Chronological,
				sec.Quality.PassiveSentences,
				strings.Join(sec.Quality.WeakVerbs, ", "),
				sec.Quality.Quantified,
				sec.Quality.Readability.FleschScore,
				sec.Quality.Readability.GradeLevel,
				grammarIssues,
			}
			if err := writeRow(f, SectionsSheet, row, values); err != nil {
				return err
			}
			if err := styleCell(f, SectionsSheet, 3, row, s.scoreStyle(sec.Score)); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeKeywords(f *excelize.File, s styles, reports []*types.Report) error {
	if err := writeHeader(f, KeywordsSheet, s, keywordHeaders); err != nil {
		return err
	}

	row := 2
	for _, r := range reports {
		if r.Match == nil {
			continue
		}
		for i, kw := range r.Match.MissingKeywords {
			suggestion := ""
			if i < len(r.Match.Suggestions) {
				suggestion = r.Match.Suggestions[i]
			}
			if err := writeRow(f, KeywordsSheet, row, []interface{}{r.Source, kw, suggestion}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
