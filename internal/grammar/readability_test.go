package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"make", 1},
		{"table", 2},
		{"managed", 2},
		{"wanted", 2},
		{"communication", 5},
		{"2020", 1},
		{"rhythm", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSyllables(tt.word))
		})
	}
}

func TestReadability(t *testing.T) {
	simple := Readability("The cat sat on the mat.")
	assert.InDelta(t, 116.15, simple.FleschScore, 0.01)
	assert.Equal(t, "1st and 2nd grade", simple.GradeLevel)

	dense := Readability("Comprehensive organizational transformation initiatives necessitate " +
		"extraordinarily sophisticated stakeholder communication.")
	assert.Less(t, dense.FleschScore, simple.FleschScore)
	assert.Equal(t, "44th and 45th grade", dense.GradeLevel)
}

func TestReadability_Empty(t *testing.T) {
	assert.Equal(t, Readability(""), Readability("  ... !! "))
	assert.Empty(t, Readability("").GradeLevel)
}

func TestReadability_Deterministic(t *testing.T) {
	text := "Led a team of five engineers. Shipped three releases on schedule."
	assert.Equal(t, Readability(text), Readability(text))
}

func TestGradeLabel(t *testing.T) {
	tests := []struct {
		grade float64
		want  string
	}{
		{-3.2, "1st and 2nd grade"},
		{2.9, "2nd and 3rd grade"},
		{9.4, "9th and 10th grade"},
		{11.0, "11th and 12th grade"},
		{12.5, "12th and 13th grade"},
		{21.1, "21st and 22nd grade"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, GradeLabel(tt.grade))
		})
	}
}
