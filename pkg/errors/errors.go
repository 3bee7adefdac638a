// Package errors provides structured error types for lbcode.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes group into three families:
//   - Model errors (INVALID_FORMAT, INVALID_NUMBER, UNSUPPORTED_ROTATION,
//     OUT_OF_RANGE, EMPTY_MODEL): the LDraw input cannot be converted
//   - Input errors (INVALID_INPUT, FILE_NOT_FOUND, PAYLOAD_TOO_LARGE): the request around the model is wrong
//   - INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "line %d: expected 15 tokens", n)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle malformed model
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Model errors
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"
	ErrCodeInvalidNumber       Code = "INVALID_NUMBER"
	ErrCodeUnsupportedRotation Code = "UNSUPPORTED_ROTATION"
	ErrCodeOutOfRange          Code = "OUT_OF_RANGE"
	ErrCodeEmptyModel          Code = "EMPTY_MODEL"

	// Input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodePayloadTooLarge Code = "PAYLOAD_TOO_LARGE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsModelError reports whether err describes a problem with the LDraw model
// itself rather than with the surrounding request or the server.
func IsModelError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidFormat, ErrCodeInvalidNumber, ErrCodeUnsupportedRotation,
		ErrCodeOutOfRange, ErrCodeEmptyModel:
		return true
	}
	return false
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	if IsModelError(err) {
		return http.StatusUnprocessableEntity
	}
	switch GetCode(err) {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
