package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError for logging and tests. Clients only ever see Message.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindVerification      Kind = "verification_failed"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindTooLarge          Kind = "too_large"
	KindExtractionFailed  Kind = "extraction_failed"
	KindUpstream          Kind = "upstream"
	KindConfiguration     Kind = "configuration"
	KindInternal          Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newKind(code int, kind Kind, message string, err error) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return newKind(http.StatusBadRequest, KindValidation, message, nil)
}

func Validation(message string, err error) *AppError {
	return newKind(http.StatusBadRequest, KindValidation, message, err)
}

func VerificationFailed(message string) *AppError {
	return newKind(http.StatusBadRequest, KindVerification, message, nil)
}

func UnsupportedFormat(message string, err error) *AppError {
	return newKind(http.StatusBadRequest, KindUnsupportedFormat, message, err)
}

func TooLarge(message string, err error) *AppError {
	return newKind(http.StatusBadRequest, KindTooLarge, message, err)
}

func ExtractionFailed(message string, err error) *AppError {
	return newKind(http.StatusBadRequest, KindExtractionFailed, message, err)
}

func Upstream(message string, err error) *AppError {
	return newKind(http.StatusInternalServerError, KindUpstream, message, err)
}

// Configuration reports a missing server credential. The message names the
// variable so an operator can fix it.
func Configuration(variable string) *AppError {
	return newKind(http.StatusInternalServerError, KindConfiguration,
		fmt.Sprintf("Server is missing %s. Set it in the environment.", variable), nil)
}

// Internal wraps an unexpected error. Its message is safe to show; err never is.
func Internal(err error) *AppError {
	return newKind(http.StatusInternalServerError, KindInternal, "Server error", err)
}

// KindOf returns the Kind of err, or KindInternal for anything that is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
