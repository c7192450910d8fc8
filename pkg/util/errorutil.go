package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error classes surfaced by the repositories.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgConnectionClass     = "08"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
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
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, details)
}

// NewAuthRejected is returned for unknown usernames, wrong passwords and
// inactive accounts alike, so callers cannot enumerate usernames.
func NewAuthRejected() error {
	return NewDomainError("AUTH_REJECTED", "invalid credentials", http.StatusUnauthorized, nil)
}

func NewUsernameTaken(username string) error {
	return NewDomainError("USERNAME_TAKEN", "username already exists", http.StatusConflict,
		map[string]any{"username": username})
}

func NewReferenceInvalid(message string, details map[string]any) error {
	return NewDomainError("REFERENCE_INVALID", message, http.StatusUnprocessableEntity, details)
}

func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       "STORE_UNAVAILABLE",
		Message:    "database unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError, classifying the
// driver errors the persistence layer propagates unchanged.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return NewDomainError("USERNAME_TAKEN", "duplicate value", http.StatusConflict, nil)
		case pgErr.Code == pgForeignKeyViolation:
			return NewReferenceInvalid("referenced row does not exist", nil).(*DomainError)
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgConnectionClass:
			return NewStoreUnavailable(err).(*DomainError)
		}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return NewStoreUnavailable(err).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// IsCode reports whether err carries the given domain error code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
