package validation

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCountPassiveVoice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"single passive", "The report was created by me.", 1},
		{"case insensitive", "Systems WERE Migrated and tests are automated", 2},
		{"active voice", "I created the report.", 0},
		{"verb not ending in ed", "It was built quickly", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountPassiveVoice(tt.text))
		})
	}
}

func TestDetectWeakVerbs(t *testing.T) {
	assert.Equal(t, []string{"helped", "worked"}, DetectWeakVerbs("Worked on billing. Helped the team."))
	assert.Equal(t, []string{}, DetectWeakVerbs("Coworked spaces and unhelpedness"))
	assert.Equal(t, []string{"supported"}, DetectWeakVerbs("SUPPORTED customers"))
}

func TestHasQuantifiedAchievements(t *testing.T) {
	assert.True(t, HasQuantifiedAchievements("Improved efficiency by 20%."))
	assert.True(t, HasQuantifiedAchievements("Led team of 5"))
	assert.False(t, HasQuantifiedAchievements("Improved efficiency a lot"))
}

func TestCheckFormattingConsistency(t *testing.T) {
	text := "EXPERIENCE\nbuilt things\nShipped  features\n\nGood line"
	issues := CheckFormattingConsistency(text)

	assert.Equal(t, []string{
		"Line doesn't start with a capital: 'built things'",
		"Inconsistent spacing in: 'Shipped  features'",
	}, issues)
}

func TestCheckFormattingConsistency_AllCapsWithSpacingSkipped(t *testing.T) {
	assert.Empty(t, CheckFormattingConsistency("WORK  EXPERIENCE"))
}

func TestCheckFormattingConsistency_LeadingIndent(t *testing.T) {
	issues := CheckFormattingConsistency("  indented line")
	assert.Equal(t, []string{"Inconsistent spacing in: 'indented line'"}, issues)
}

func TestCheckResumeLength(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  string
	}{
		{"too short", 299, types.LengthTooShort},
		{"lower bound", 300, types.LengthOK},
		{"upper bound", 1000, types.LengthOK},
		{"too long", 1001, types.LengthTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckResumeLength(strings.Repeat("word ", tt.words))
			assert.Equal(t, tt.want, got.Verdict)
			assert.Equal(t, tt.words, got.WordCount)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestCheckQuality(t *testing.T) {
	got := CheckQuality("Helped migrate 3 services.\nservices were deployed")

	assert.Equal(t, 1, got.PassiveSentences)
	assert.Equal(t, []string{"helped"}, got.WeakVerbs)
	assert.True(t, got.Quantified)
	assert.Len(t, got.FormattingIssues, 1)
	assert.Nil(t, got.Grammar)
}
