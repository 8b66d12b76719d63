package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors. Kind is the short
// machine-readable tag rendered in the response body.
type DomainError struct {
	Kind       string
	Message    string
	HTTPStatus int
	RetryAfter int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind, message string, status int) *DomainError {
	return &DomainError{Kind: kind, Message: message, HTTPStatus: status}
}

func NewValidationError(message string) error {
	return NewDomainError("Bad Request", message, http.StatusBadRequest)
}

func NewNotFound(resource string) error {
	return NewDomainError("Not Found", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewUnauthorized(message string) error {
	return NewDomainError("Unauthorized", message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError("Forbidden", message, http.StatusForbidden)
}

func NewConflict(message string) error {
	return NewDomainError("Conflict", message, http.StatusConflict)
}

// NewRateLimited reports an exhausted request budget. retryAfter is the
// number of seconds until the window resets.
func NewRateLimited(retryAfter int) error {
	return &DomainError{
		Kind:       "Too Many Requests",
		Message:    fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter),
		HTTPStatus: http.StatusTooManyRequests,
		RetryAfter: retryAfter,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:       "Internal Server Error",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Secrets, SQL and
// stack traces must never leak through the returned message.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Kind:       "Internal Server Error",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
