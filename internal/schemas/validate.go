// Package schemas compiles JSON Schema definitions and validates documents
// against them.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-analyzer/schemas"
)

// FieldError is a single violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// LoadError is returned when a schema does not compile or a document is not
// valid JSON.
type LoadError struct {
	Schema string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Schema, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema.
type Schema struct {
	name     string
	compiled *gojsonschema.Schema
}

// Compile parses content as a JSON Schema named name.
func Compile(name, content string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &LoadError{Schema: name, Cause: err}
	}
	return &Schema{name: name, compiled: compiled}, nil
}

var (
	embeddedMu sync.Mutex
	embedded   = map[string]*Schema{}
)

// Embedded compiles one of the schemas shipped with the module, once.
func Embedded(name string) (*Schema, error) {
	embeddedMu.Lock()
	defer embeddedMu.Unlock()

	if s, ok := embedded[name]; ok {
		return s, nil
	}
	content, err := schemas.Get(name)
	if err != nil {
		return nil, &LoadError{Schema: name, Cause: err}
	}
	s, err := Compile(name, content)
	if err != nil {
		return nil, err
	}
	embedded[name] = s
	return s, nil
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string {
	return s.name
}

// ValidateBytes validates a JSON document.
func (s *Schema) ValidateBytes(data []byte) error {
	return s.validate(gojsonschema.NewBytesLoader(data))
}

// ValidateString validates a JSON document held in a string.
func (s *Schema) ValidateString(doc string) error {
	return s.validate(gojsonschema.NewStringLoader(doc))
}

// ValidateValue validates v as it would be marshaled to JSON.
func (s *Schema) ValidateValue(v any) error {
	return s.validate(gojsonschema.NewGoLoader(v))
}

func (s *Schema) validate(doc gojsonschema.JSONLoader) error {
	result, err := s.compiled.Validate(doc)
	if err != nil {
		return &LoadError{Schema: s.name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: s.name}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
