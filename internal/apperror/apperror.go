package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain error categories.
//
// Services return AppErrors wrapping one of these; the HTTP layer uses
// errors.Is to map each category to a status code. Note the deliberate split
// between ErrInvalidCredentials and ErrNotFound: login failures are OPAQUE
// (unknown email and wrong password produce the same error, so an attacker
// can't probe which emails are registered), while reset-password reports
// not-found explicitly — that's the contract the frontend relies on.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("duplicate email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // sentinel category (one of the vars above)
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateEmail reports a signup attempt with an email that already has a
// live account. The message intentionally does not echo the email back.
func DuplicateEmail() *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: "Email already in use",
	}
}

// InvalidCredentials is returned for BOTH unknown-email and wrong-password
// login failures. Never construct a more specific message — the uniformity is
// the point.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Invalid credentials",
	}
}

// Unauthorized indicates a missing, malformed, expired, or tampered bearer
// token. HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
