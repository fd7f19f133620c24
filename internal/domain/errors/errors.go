package errors

import (
	"errors"
	"fmt"
)

// FallbackMessage is reported when a failed payment carries no server message.
const FallbackMessage = "payment request failed"

var (
	// Payment errors
	ErrPaymentRejected  = errors.New("payment rejected by server")
	ErrPaymentTimeout   = errors.New("payment request timeout")
	ErrPaymentTransport = errors.New("payment transport failure")

	// Configuration errors
	ErrInvalidBaseURL = errors.New("invalid payment api base url")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// PaymentError is the single normalized failure returned by the payment
// client. Error() is always human-readable text suitable for display.
type PaymentError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *PaymentError) Error() string {
	if e.Message == "" {
		return FallbackMessage
	}
	return e.Message
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a payment error. An empty message falls back to
// FallbackMessage.
func NewPaymentError(message string, statusCode int, err error) *PaymentError {
	if message == "" {
		message = FallbackMessage
	}
	return &PaymentError{
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation error with ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
