package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource conflict")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Business errors
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrOrderNotBiddable   = errors.New("order is no longer biddable")
	ErrDriverUnavailable  = errors.New("driver is not available")
	ErrSubscriptionLapsed = errors.New("driver subscription is missing or expired")
	ErrAlreadyPaid        = errors.New("order already paid")
	ErrAmountMismatch     = errors.New("payment amount does not match fare")
)

// APIError represents a structured API error
type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error
func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common API errors
func NotFound(resource string) *APIError {
	return NewAPIError("not_found", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func BadRequest(message string) *APIError {
	return NewAPIError("bad_request", message, http.StatusBadRequest)
}

func Conflict(message string) *APIError {
	return NewAPIError("conflict", message, http.StatusConflict)
}

func InternalError(message string) *APIError {
	return NewAPIError("internal_error", message, http.StatusInternalServerError)
}

func ValidationError(message string) *APIError {
	return NewAPIError("validation_error", message, http.StatusBadRequest)
}

func InvalidTransition(from, to string) *APIError {
	return NewAPIError("invalid_transition", fmt.Sprintf("cannot transition from %s to %s", from, to), http.StatusConflict)
}

func InvalidState(message string) *APIError {
	return NewAPIError("invalid_state", message, http.StatusConflict)
}

func Ineligible(message string) *APIError {
	return NewAPIError("ineligible", message, http.StatusForbidden)
}

func WrongRole(expected string) *APIError {
	return NewAPIError("wrong_role", fmt.Sprintf("user is not a %s", expected), http.StatusForbidden)
}

func AlreadyPaid() *APIError {
	return NewAPIError("already_paid", "order has already been paid", http.StatusConflict)
}

func AmountMismatch(expected float64) *APIError {
	return NewAPIError("amount_mismatch", fmt.Sprintf("payment amount does not match expected fare %.2f", expected), http.StatusBadRequest)
}
