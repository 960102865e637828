// Package schemas provides JSON Schema validation for style profile
// documents exchanged as raw JSON, complementing the struct-level rules in
// internal/types.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// styleProfileSchema is the canonical document schema, embedded so the
// server and CLI validate identically regardless of working directory.
//
//go:embed style_profile.schema.json
var styleProfileSchema string

// StyleProfileSchema returns the canonical schema document.
func StyleProfileSchema() string {
	return styleProfileSchema
}

// ValidationError carries every schema violation found in one document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports problems with the schema or document loading
// itself, as opposed to the document failing validation.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateStyleProfileDocument validates raw JSON content against the style
// profile schema. Returns nil on success, a *ValidationError listing every
// violation otherwise.
func ValidateStyleProfileDocument(jsonContent []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(styleProfileSchema)
	documentLoader := gojsonschema.NewBytesLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(document)",
			Message: "validation could not run",
			Cause:   err,
		}
	}
	return resultError(result)
}

// ValidateStyleProfileFile validates a JSON file on disk against the style
// profile schema. Used by the CLI before bulk profile updates.
func ValidateStyleProfileFile(jsonPath string) error {
	absPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve document path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("document file not found: %s", absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	return ValidateStyleProfileDocument(content)
}

func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
