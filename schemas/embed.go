// Package schemas embeds the JSON Schema definitions for role models and
// analysis reports.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Schema file names.
const (
	RoleModel = "role_model.schema.json"
	Report    = "report.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Get returns the content of the named schema.
func Get(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}

// MustGet is like Get but panics when the schema is missing.
func MustGet(name string) string {
	content, err := Get(name)
	if err != nil {
		panic(err)
	}
	return content
}

// Names lists the embedded schemas.
func Names() []string {
	matches, _ := fs.Glob(files, "*.schema.json")
	sort.Strings(matches)
	return matches
}
