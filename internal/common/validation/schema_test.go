package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notesSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"notes"},
	"properties": map[string]interface{}{
		"notes": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"includeAnalysis": map[string]interface{}{
			"type": "boolean",
		},
	},
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		input     map[string]interface{}
		wantValid bool
		wantField string
	}{
		{
			name:      "valid",
			input:     map[string]interface{}{"notes": "ajustar relatório"},
			wantValid: true,
		},
		{
			name:      "missing notes",
			input:     map[string]interface{}{},
			wantValid: false,
			wantField: "(root)",
		},
		{
			name:      "empty notes",
			input:     map[string]interface{}{"notes": ""},
			wantValid: false,
			wantField: "notes",
		},
		{
			name:      "wrong type",
			input:     map[string]interface{}{"notes": "x", "includeAnalysis": "yes"},
			wantValid: false,
			wantField: "includeAnalysis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateInput(tt.input, notesSchema)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.wantField, result.Errors[0].Field)
				assert.Contains(t, result.Error(), tt.wantField)
			}
		})
	}
}

func TestCompile_EmptySchemaAcceptsAnything(t *testing.T) {
	s, err := Compile(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	result, err := s.Validate(map[string]interface{}{"anything": 1})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(map[string]interface{}{"type": 42})
	assert.Error(t, err)
}

func TestSchema_ValidateStruct(t *testing.T) {
	s, err := Compile(notesSchema)
	require.NoError(t, err)

	result, err := s.Validate(struct {
		Notes string `json:"notes"`
	}{Notes: "novo campo"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}
