package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses. Message is the
// user-facing text the frontend shows verbatim.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Is matches on Code so wrapped copies of a sentinel still compare equal.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAPIError(code, message string, status int) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *APIError) WithMessage(message string) *APIError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithDetails returns a copy of e carrying structured details.
func (e *APIError) WithDetails(details any) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

var (
	ErrInvalidInput    = NewAPIError("INVALID_INPUT", "Geçersiz istek verisi", http.StatusBadRequest)
	ErrUnauthorized    = NewAPIError("UNAUTHORIZED", "Yetkilendirme hatası: Token bulunamadı", http.StatusUnauthorized)
	ErrInvalidToken    = NewAPIError("INVALID_TOKEN", "Geçersiz token. Lütfen tekrar giriş yapın.", http.StatusUnauthorized)
	ErrForbidden       = NewAPIError("FORBIDDEN", "Bu işlemi yapmaya yetkiniz yok", http.StatusForbidden)
	ErrNotFound        = NewAPIError("NOT_FOUND", "Kayıt bulunamadı", http.StatusNotFound)
	ErrConflict        = NewAPIError("CONFLICT", "Kayıt zaten mevcut", http.StatusBadRequest)
	ErrTooManyRequests = NewAPIError("TOO_MANY_REQUESTS", "Çok fazla istek. Lütfen daha sonra tekrar deneyin.", http.StatusTooManyRequests)
	ErrInternal        = NewAPIError("INTERNAL_SERVER_ERROR", "Sunucu hatası", http.StatusInternalServerError)
)

// Wrap returns err unchanged if it already is an APIError, otherwise an
// APIError with the given code, message and status that keeps err as cause.
func Wrap(err error, code, message string, status int) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{
		Code:    code,
		Message: message,
		Status:  status,
		cause:   err,
	}
}

// Internal wraps an unexpected error as a generic 500.
func Internal(err error) *APIError {
	return Wrap(err, ErrInternal.Code, ErrInternal.Message, ErrInternal.Status)
}
