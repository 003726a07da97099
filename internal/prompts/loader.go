// Package prompts renders LLM prompt templates embedded at compile time.
package prompts

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"
)

// RoleDistribution asks for a probability per candidate role. Its data has
// Roles []string and Resume string.
const RoleDistribution = "role_distribution"

//go:embed *.tmpl
var templateFiles embed.FS

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error
)

func templates() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New("prompts").Option("missingkey=error").ParseFS(templateFiles, "*.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("failed to parse prompt templates: %w", parseErr)
		}
	})
	return parsed, parseErr
}

// Render executes the named prompt with data.
func Render(name string, data any) (string, error) {
	t, err := templates()
	if err != nil {
		return "", err
	}

	tmpl := t.Lookup(name + ".tmpl")
	if tmpl == nil {
		return "", fmt.Errorf("prompt %q not found", name)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Names returns the sorted names of the embedded prompts.
func Names() ([]string, error) {
	t, err := templates()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, tmpl := range t.Templates() {
		if name, ok := strings.CutSuffix(tmpl.Name(), ".tmpl"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
