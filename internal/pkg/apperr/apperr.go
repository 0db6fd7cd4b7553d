package apperr

import (
	"errors"
	"fmt"
)

// Error is a typed failure reason produced at the service boundary.
// Handlers translate the code into an HTTP status; services never
// swallow one silently.
type Error struct {
	Code string
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.err }

// Is matches on the code so wrapped instances compare equal to the sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrNotFound  = &Error{Code: "not_found", Msg: "resource not found"}
	ErrForbidden = &Error{Code: "forbidden", Msg: "insufficient permissions"}

	ErrAlreadyMember       = &Error{Code: "already_member", Msg: "user is already a member of this space"}
	ErrDuplicateInvitation = &Error{Code: "duplicate_invitation", Msg: "a pending invitation already exists for this email"}

	ErrInvalidToken     = &Error{Code: "invalid_token", Msg: "invitation token is invalid or expired"}
	ErrWrongRecipient   = &Error{Code: "wrong_recipient", Msg: "invitation is addressed to another user"}
	ErrEmailMismatch    = &Error{Code: "email_mismatch", Msg: "invitation email does not match your account"}
	ErrAlreadyProcessed = &Error{Code: "already_processed", Msg: "invitation has already been processed"}

	ErrStorage = &Error{Code: "storage", Msg: "storage failure"}
)

// Storage wraps a driver or transaction error after the storage layer has
// already rolled back partial effects.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: ErrStorage.Code, Msg: ErrStorage.Msg, err: err}
}

// ValidationError carries every violated field, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Validation builds a ValidationError, returning nil when no field failed.
func Validation(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// IsTokenResolution reports whether err belongs to the invitation-token
// resolution family. The transport boundary collapses all of these into one
// generic message so a caller cannot probe how close a token came to matching.
func IsTokenResolution(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrWrongRecipient) ||
		errors.Is(err, ErrEmailMismatch)
}
