package oadr3

import (
	"errors"
	"fmt"
	"strings"
)

// Static errors that can be wrapped with context.
var (
	ErrClientClosed       = errors.New("client is closed")
	ErrEmptyID            = errors.New("id cannot be empty")
	ErrNilResource        = errors.New("resource cannot be nil")
	ErrUnexpectedPayload  = errors.New("unexpected response payload")
	ErrTokenManagerNeeded = errors.New("token manager is required")
)

// ConfigurationError reports invalid client construction parameters.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

// ValidationError reports field-level schema or parameter violations. It is
// returned before a request is sent, or when a successful response carries a
// payload that does not match its schema.
type ValidationError struct {
	Errors []string
	Err    error
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(errs ...string) *ValidationError {
	return &ValidationError{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}

	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// Unwrap returns the underlying cause, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AuthenticationError reports a failed token exchange. StatusCode is zero when
// the token endpoint could not be reached at all.
type AuthenticationError struct {
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed: %s (status: %d)", e.Message, e.StatusCode)
	}

	return "authentication failed: " + e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// RequestError reports that an HTTP call could not be completed. Server
// responses with error statuses are not RequestErrors; they are returned in
// APIResponse.Problem.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Error implements the error interface so a problem can be returned or wrapped
// by callers that prefer error values.
func (e *APIError) Error() string {
	switch {
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s (status: %d)", e.Title, e.Detail, e.Status)
	case e.Title != "":
		return fmt.Sprintf("%s (status: %d)", e.Title, e.Status)
	default:
		return fmt.Sprintf("%s (status: %d)", e.Detail, e.Status)
	}
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}

// IsAuthenticationError reports whether err is or wraps an AuthenticationError.
func IsAuthenticationError(err error) bool {
	var authErr *AuthenticationError

	return errors.As(err, &authErr)
}

// IsNotFound reports whether the response carries a 404 problem.
func IsNotFound[T any](resp *APIResponse[T]) bool {
	return resp != nil && resp.Status == 404
}
