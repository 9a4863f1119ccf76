package tools

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/usestring/ghspec/internal/input"
	"github.com/usestring/ghspec/pkg/apispec"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeSpecLoad     = "SPEC_LOAD_ERROR"
	ErrCodeTooLarge     = "TOO_LARGE"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapSpecError converts a document load failure to a coded error.
func WrapSpecError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		coded = &CodedError{Code: ErrCodeSpecLoad, Message: "spec document does not exist", Cause: err}
	case errors.Is(err, apispec.ErrUnsupportedFormat):
		coded = &CodedError{Code: ErrCodeSpecLoad, Message: "spec document must be .json, .yaml or .yml", Cause: err}
	case errors.Is(err, input.ErrTooLarge):
		coded = &CodedError{Code: ErrCodeTooLarge, Message: "input too large", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeSpecLoad, Message: "spec document could not be loaded", Cause: err}
	}

	slog.Warn("spec document error",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
