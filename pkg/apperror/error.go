package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindInvalidReference Kind = "invalid_reference"
	KindOutOfWindow      Kind = "out_of_window"
	KindQuotaExceeded    Kind = "quota_exceeded"
	KindHasDependents    Kind = "has_dependents"
	KindUnauthorized     Kind = "unauthorized"
	KindValidation       Kind = "validation"
	KindStoreFailure     Kind = "store_failure"
	KindRateLimited      Kind = "rate_limited"
)

type AppError struct {
	Kind    Kind        `json:"kind"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of err, or KindStoreFailure for anything that is not an AppError
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreFailure
}

// Is reports whether err is an AppError of the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func BadRequest(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

// Validation reports store-level constraint violations; details lists each violated constraint
func Validation(message string, details interface{}) *AppError {
	e := New(KindValidation, http.StatusBadRequest, message, nil)
	e.Details = details
	return e
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func InvalidReference(message string) *AppError {
	return New(KindInvalidReference, http.StatusBadRequest, message, nil)
}

func OutOfWindow(message string) *AppError {
	return New(KindOutOfWindow, http.StatusBadRequest, message, nil)
}

func QuotaExceeded(message string) *AppError {
	return New(KindQuotaExceeded, http.StatusBadRequest, message, nil)
}

func HasDependents(message string) *AppError {
	return New(KindHasDependents, http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindUnauthorized, http.StatusForbidden, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(KindRateLimited, http.StatusTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(KindStoreFailure, http.StatusInternalServerError, "Internal Server Error", err)
}
