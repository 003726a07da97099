package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercases", "Senior GO Engineer", "senior go engineer"},
		{"Strips punctuation", "Python, SQL; C++!", "python sql c"},
		{"Removes URLs", "See https://example.com/me for more", "see for more"},
		{"Removes www URLs", "Portfolio: www.example.com", "portfolio"},
		{"Collapses whitespace", "  led \t team\n\nof   5 ", "led team of 5"},
		{"Keeps underscores and digits", "snake_case 2024", "snake_case 2024"},
		{"Keeps non-ASCII letters", "Café Résumé", "café résumé"},
		{"Unicode spaces separate words", "go\u00a0rust\u2003zig", "go rust zig"},
		{"Punctuation between words does not leave double spaces", "a - b", "a b"},
		{"Empty string", "", ""},
		{"Only punctuation", "!!! ... ???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Python, SQL, led team of 5, improved efficiency by 20%.",
		"ht-tp://weird ht-tpx and http://real.example.com/path?q=1",
		"John Doe\njohn@example.com\n+1 (555) 123-4567",
		"Ünïcödé — dashes – and “quotes”",
		" non-breaking spaces too",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "Normalize should be idempotent for %q", input)
	}
}

func TestTokens(t *testing.T) {
	assert.Nil(t, Tokens(""))
	assert.Equal(t, []string{"go", "is", "go"}, Tokens("go is go"))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("go is go")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "go")
	assert.Contains(t, set, "is")
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 4, WordCount("one two\nthree\tfour"))
}
