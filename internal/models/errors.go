package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the checkout and order lifecycle. Handlers translate
// these into HTTP statuses with errors.Is, services return them wrapped with
// fmt.Errorf and %w so the chain stays inspectable.
var (
	// ErrReservationNotFound is returned when a tempId does not match any reservation.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrReservationConsumed is returned when a reservation was already consumed.
	// Distinct from ErrReservationExpired so the caller can tell "already paid"
	// apart from "your PIX timed out".
	ErrReservationConsumed = errors.New("reservation already consumed")

	// ErrReservationExpired is returned when the PIX window has closed.
	ErrReservationExpired = errors.New("reservation expired")

	// ErrOrderNotFound is returned when an order id matches no order.
	ErrOrderNotFound = errors.New("order not found")

	// ErrCustomerNotFound is returned when neither email nor phone matches a customer.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInvalidTransition is returned for a disallowed order status change.
	// This is a programming/authorization error and is never retried.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrInsufficientStock is returned when a cart line asks for more units
	// than the catalog currently has.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError describes bad input from the caller (empty cart, missing
// expiration date, zero quantity). It is surfaced as a 400 and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PaymentProviderError wraps a failure from the external PIX provider.
// Transient: the caller may retry reservation creation, the core never does.
type PaymentProviderError struct {
	Err error
}

func (e *PaymentProviderError) Error() string {
	return fmt.Sprintf("payment provider error: %v", e.Err)
}

func (e *PaymentProviderError) Unwrap() error {
	return e.Err
}
