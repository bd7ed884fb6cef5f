package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ValidationError reports missing or malformed input.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError reports a state clash: duplicate email, an already reviewed
// request, a transfer that is not pending.
type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

// NotFoundError reports a missing record.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

// AuthError reports bad credentials or a missing/invalid token.
type AuthError struct{ Msg string }

func (e *AuthError) Error() string { return e.Msg }

// ForbiddenError reports an authenticated caller lacking the required role.
type ForbiddenError struct{ Msg string }

func (e *ForbiddenError) Error() string { return e.Msg }

// RateLimitedError reports too many attempts in the current window.
type RateLimitedError struct{ Msg string }

func (e *RateLimitedError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

func Auth(format string, args ...any) error {
	return &AuthError{Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &ForbiddenError{Msg: fmt.Sprintf(format, args...)}
}

func RateLimited(format string, args ...any) error {
	return &RateLimitedError{Msg: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error from the service layer to a response code.
// Conflicts share 400 with validation failures; clients tell them apart by body.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		ce *ConflictError
		ne *NotFoundError
		ae *AuthError
		fe *ForbiddenError
		re *RateLimitedError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &ce):
		return http.StatusBadRequest
	case errors.As(err, &ne):
		return http.StatusNotFound
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	case errors.As(err, &fe):
		return http.StatusForbidden
	case errors.As(err, &re):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// IsUniqueViolation reports whether err is a unique-index violation, either
// translated by gorm or raw from the postgres driver.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

// IsNotFound reports whether err is gorm's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
