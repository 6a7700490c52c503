package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found for the given owner
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure, e.g. an attempt to
	// delete the protected "new ideas" project
	ForbiddenError struct {
		Message string
	}

	// UnconfiguredError indicates a collaborator credential is missing
	UnconfiguredError struct {
		Message string
	}

	// UpstreamError indicates an external collaborator call failed or
	// returned an unusable payload
	UpstreamError struct {
		Message string
	}

	// NoContentError indicates document synthesis was requested for a
	// project with zero transcribed videos
	NoContentError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }
func (e *UnconfiguredError) Error() string { return e.Message }
func (e *UpstreamError) Error() string     { return e.Message }
func (e *NoContentError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }
func (e *UnconfiguredError) StatusCode() int { return http.StatusServiceUnavailable }
func (e *UpstreamError) StatusCode() int     { return http.StatusBadGateway }
func (e *NoContentError) StatusCode() int    { return http.StatusUnprocessableEntity }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnconfigured = errors.New("collaborator not configured")
	ErrUpstream     = errors.New("upstream collaborator failed")
	ErrNoContent    = errors.New("no transcribed content")
)

// Is implementations so the typed errors match their sentinels with errors.Is()
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }
func (e *UnconfiguredError) Is(target error) bool { return target == ErrUnconfigured }
func (e *UpstreamError) Is(target error) bool     { return target == ErrUpstream }
func (e *NoContentError) Is(target error) bool    { return target == ErrNoContent }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (project, video, document)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
