// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Story job errors
const (
	ErrCodeInvalidInput           ErrorCode = "INVALID_INPUT"
	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeStoryGenerationFailed  ErrorCode = "STORY_GENERATION_FAILED"
	ErrCodeRenderFailed           ErrorCode = "RENDER_FAILED"
	ErrCodeUnsupportedFormat      ErrorCode = "UNSUPPORTED_FORMAT"
	ErrCodeRegistryLoadFailed     ErrorCode = "REGISTRY_LOAD_FAILED"
	ErrCodeJobCompletionFailed    ErrorCode = "JOB_COMPLETION_FAILED"
)

// Infrastructure errors
const (
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeBusinessRule     ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeAuthentication   ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns the error with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// AsStandardError finds the first StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError is raised when job variables cannot be decoded.
func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false)
}

// NewSchemaValidationFailedError carries the schema violations as details.
func NewSchemaValidationFailedError(schema string, violations []string) *StandardError {
	return newError(ErrCodeSchemaValidationFailed,
		fmt.Sprintf("Payload does not match schema %s", schema),
		strings.Join(violations, "; "), false).
		WithMetadata("violations", violations)
}

func NewStoryGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeStoryGenerationFailed, "User story generation failed", err.Error(), true)
}

func NewRenderFailedError(format string, err error) *StandardError {
	return newError(ErrCodeRenderFailed,
		fmt.Sprintf("Rendering story as %s failed", format), err.Error(), true)
}

func NewUnsupportedFormatError(format string) *StandardError {
	return newError(ErrCodeUnsupportedFormat, "Unsupported render format",
		fmt.Sprintf("format: %s", format), false)
}

// NewRegistryLoadFailedError is raised when the activity registry cannot be read.
func NewRegistryLoadFailedError(path string, err error) *StandardError {
	return newError(ErrCodeRegistryLoadFailed, "Activity registry could not be loaded",
		fmt.Sprintf("path: %s, error: %s", path, err.Error()), false)
}

func NewJobCompletionFailedError(err error) *StandardError {
	return newError(ErrCodeJobCompletionFailed, "Job completion command failed", err.Error(), true)
}

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRule, message, details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService,
		fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout,
		fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound,
		fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthentication, "Authentication failed", details, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes caught by boundary
// events in the story process. Codes not listed are thrown as-is.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:           "INVALID_INPUT",
	ErrCodeSchemaValidationFailed: "SCHEMA_VALIDATION_FAILED",
	ErrCodeStoryGenerationFailed:  "STORY_GENERATION_FAILED",
	ErrCodeRenderFailed:           "RENDER_FAILED",
	ErrCodeUnsupportedFormat:      "UNSUPPORTED_FORMAT",
	ErrCodeRegistryLoadFailed:     "CONFIGURATION_ERROR",
	ErrCodeJobCompletionFailed:    "JOB_COMPLETION_FAILED",
	ErrCodeExternalService:        "EXTERNAL_SERVICE_ERROR",
	ErrCodeTimeout:                "TIMEOUT_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeExternalService,
		ErrCodeJobCompletionFailed:
		return 3
	case ErrCodeTimeout:
		return 2
	case ErrCodeStoryGenerationFailed,
		ErrCodeRenderFailed:
		return 1
	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") ||
		strings.Contains(codeStr, "UNSUPPORTED"):
		return "VALIDATION"
	case strings.Contains(codeStr, "STORY") || strings.Contains(codeStr, "RENDER"):
		return "STORY"
	case strings.Contains(codeStr, "REGISTRY"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT") ||
		strings.Contains(codeStr, "JOB"):
		return "INFRASTRUCTURE"
	case strings.Contains(codeStr, "AUTHENTICATION"):
		return "AUTH"
	default:
		return "OTHER"
	}
}
