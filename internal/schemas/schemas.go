// Package schemas checks structured model replies against embedded JSON Schemas.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// JobMatch names the schema for job description analysis results
const JobMatch = "job_match"

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// FieldError is one schema violation. Field is a dotted path, "(root)" for the top level.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s: %d schema violation(s): %s", e.Schema, len(e.Errors), strings.Join(parts, "; "))
}

// SchemaLoadError is returned when a schema is unknown or a document is not JSON
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error { return e.Cause }

// Get returns the source of the embedded schema called name
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return "", &SchemaLoadError{Schema: name, Message: "unknown embedded schema", Cause: err}
	}
	return string(data), nil
}

// load compiles the schema called name once and reuses it
func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()
	if s, ok := compiled[name]; ok {
		return s, nil
	}
	src, err := Get(name)
	if err != nil {
		return nil, err
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Message: "failed to compile", Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// Validate checks jsonContent against the embedded schema called name.
// Violations come back as a *ValidationError, unusable input as a *SchemaLoadError.
func Validate(name, jsonContent string) error {
	s, err := load(name)
	if err != nil {
		return err
	}
	result, err := s.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{Schema: name, Message: "document is not valid JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
