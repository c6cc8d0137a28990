package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Quiz specific errors
	CodeQuizNotFound        ErrorCode = "QUIZ_NOT_FOUND"
	CodeDuplicateSubmission ErrorCode = "DUPLICATE_SUBMISSION"
	CodeExtractionFailed    ErrorCode = "EXTRACTION_FAILED"
	CodeGenerationFailed    ErrorCode = "GENERATION_FAILED"
	CodeGenerationTimeout   ErrorCode = "GENERATION_TIMEOUT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewDuplicateSubmissionError(studentID, quizID string) *DomainError {
	return NewError(CodeDuplicateSubmission,
		fmt.Sprintf("Student %s has already submitted quiz %s", studentID, quizID), nil)
}

// NewExtractionError marks a failure to read text out of an uploaded PDF.
func NewExtractionError(cause error) *DomainError {
	return NewError(CodeExtractionFailed, "Failed to extract text from PDF", cause)
}

// NewGenerationError marks an unusable response from the question
// generation service. The cause carries the parse detail for diagnostics;
// the message never includes the raw LLM payload.
func NewGenerationError(cause error) *DomainError {
	return NewError(CodeGenerationFailed, "Quiz generation failed", cause)
}

func NewGenerationTimeoutError(cause error) *DomainError {
	return NewError(CodeGenerationTimeout, "Quiz generation timed out", cause)
}

// ValidationError represents a single field-level validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures so a request can report
// everything wrong with it at once
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Value: value, Message: "has an invalid format"}
}
