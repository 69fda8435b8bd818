package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Messages flattens the errors into "field: message" strings.
func (r *ValidationResult) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return out
}

func (r *ValidationResult) Error() string {
	return "validation failed: " + strings.Join(r.Messages(), "; ")
}

// Schema is a compiled JSON schema. A nil Schema accepts every document.
type Schema struct {
	schema *gojsonschema.Schema
}

// Compile parses a JSON schema given as a decoded map. An empty map compiles
// to a nil Schema.
func Compile(schemaMap map[string]interface{}) (*Schema, error) {
	if len(schemaMap) == 0 {
		return nil, nil
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// Validate checks doc, which may be a map or any JSON-marshalable value.
func (s *Schema) Validate(doc interface{}) (*ValidationResult, error) {
	if s == nil {
		return &ValidationResult{Valid: true}, nil
	}

	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return toResult(result), nil
}

// ValidateInput compiles schemaMap and validates input against it in one go.
func ValidateInput(input map[string]interface{}, schemaMap map[string]interface{}) (*ValidationResult, error) {
	s, err := Compile(schemaMap)
	if err != nil {
		return nil, err
	}
	return s.Validate(input)
}

func toResult(result *gojsonschema.Result) *ValidationResult {
	vr := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return vr
}
