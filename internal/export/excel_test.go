package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func strPtr(s string) *string { return &s }

func sampleReports() []*types.Report {
	return []*types.Report{
		{
			Source:   "jane.pdf",
			Identity: types.IdentityInfo{Name: strPtr("Jane Doe"), Email: strPtr("jane@example.com")},
			Length:   types.LengthCheck{WordCount: 420, Verdict: types.LengthOK},
			Sections: []types.SectionReport{
				{
					Label:  "experience",
					Score:  75,
					Skills: types.SkillSet{Hard: []string{"python", "sql"}, Soft: []string{"leadership"}},
					Timeline: types.Timeline{
						Years:         []int{2022, 2019},
						Gaps:          []types.Gap{{From: 2019, To: 2022}},
						Chronological: true,
					},
					Quality: types.QualityReport{
						WeakVerbs:   []string{"helped"},
						Readability: types.Readability{FleschScore: 45, GradeLevel: "11th and 12th grade"},
						Grammar:     &types.GrammarReport{ErrorCount: 2},
					},
				},
			},
			Role:  &types.RolePrediction{Role: "Data Scientist", Confidence: 80},
			ATS:   &types.ATSReport{Extension: ".pdf", FileOK: true, HeadersMissing: []string{"awards", "education"}},
			Match: &types.MatchResult{Score: 40, MissingKeywords: []string{"docker", "kubernetes"}, Suggestions: []string{"Include the keyword 'docker' if relevant.", "Include the keyword 'kubernetes' if relevant."}},
		},
		{
			Source: "john.txt",
			Length: types.LengthCheck{WordCount: 90, Verdict: types.LengthTooShort},
		},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(sampleReports(), &buf))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{SummarySheet, SectionsSheet, KeywordsSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, summaryHeaders, summary[0])
	assert.Equal(t, "jane.pdf", summary[1][0])
	assert.Equal(t, "Jane Doe", summary[1][1])
	assert.Equal(t, "420", summary[1][4])
	assert.Equal(t, "Data Scientist", summary[1][6])
	assert.Equal(t, "awards, education", summary[1][10])
	assert.Equal(t, "john.txt", summary[2][0])
	assert.Equal(t, types.LengthTooShort, summary[2][5])

	sections, err := f.GetRows(SectionsSheet)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "experience", sections[1][1])
	assert.Equal(t, "python, sql", sections[1][3])
	assert.Equal(t, "2019-2022", sections[1][5])
	assert.Equal(t, "11th and 12th grade", sections[1][11])
	assert.Equal(t, "2", sections[1][12])

	keywords, err := f.GetRows(KeywordsSheet)
	require.NoError(t, err)
	require.Len(t, keywords, 3)
	assert.Equal(t, []string{"jane.pdf", "kubernetes", "Include the keyword 'kubernetes' if relevant."}, keywords[2])
}

func TestWriteExcel_NoReports(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(nil, &buf))

	f := openWorkbook(t, buf.Bytes())
	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportToExcel_AddsExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report")
	require.NoError(t, ExportToExcel(sampleReports(), out))

	_, err := os.Stat(out + ".xlsx")
	assert.NoError(t, err)
}

func TestExportToExcel_BadDirectory(t *testing.T) {
	err := ExportToExcel(sampleReports(), filepath.Join(t.TempDir(), "missing", "report.xlsx"))
	assert.Error(t, err)
}
