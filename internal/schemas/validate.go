// Package schemas validates provider responses and template registries
// against embedded JSON Schemas.
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

// Embedded schema names
const (
	LearningPlan = "learning_plan.schema.json"
	JobTemplates = "job_templates.schema.json"
)

// compiled caches embedded schemas by name
var compiled sync.Map

// FieldError is one failed constraint
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every constraint a document failed
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

// SchemaLoadError is returned when a schema cannot be compiled or the
// document is not JSON at all
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks JSON content against one of the embedded schemas
func Validate(schemaName, jsonContent string) error {
	schema, err := embedded(schemaName)
	if err != nil {
		return err
	}
	return check(schema, schemaName, jsonContent)
}

// ValidateLearningPlan checks a provider's plan response
func ValidateLearningPlan(jsonContent string) error {
	return Validate(LearningPlan, jsonContent)
}

// ValidateJobTemplates checks a job template registry document
func ValidateJobTemplates(jsonContent string) error {
	return Validate(JobTemplates, jsonContent)
}

// ValidateJSONString validates JSON content against an inline schema
func ValidateJSONString(schemaContent, jsonContent string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return &SchemaLoadError{Path: "(inline)", Message: "invalid schema", Cause: err}
	}
	return check(schema, "(inline)", jsonContent)
}

func embedded(name string) (*gojsonschema.Schema, error) {
	if cached, ok := compiled.Load(name); ok {
		return cached.(*gojsonschema.Schema), nil
	}

	raw, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "unknown schema", Cause: err}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}

	actual, _ := compiled.LoadOrStore(name, schema)
	return actual.(*gojsonschema.Schema), nil
}

func check(schema *gojsonschema.Schema, name, jsonContent string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{Path: name, Message: "document is not valid JSON", Cause: err}
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
