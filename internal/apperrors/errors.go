package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal marks infrastructure failures (storage, locking backends).
var ErrInternal = errors.New("internal error")

// Ledger and settlement failures. Callers match them with errors.Is.
var (
	// ErrAccountNotFound is returned when a posting references an account code missing from the chart of accounts.
	ErrAccountNotFound = fmt.Errorf("account not found: %w", ErrNotFound)

	// ErrInvalidAmount is returned for non-positive posting amounts and malformed payment amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidRate is returned when a foreign amount is supplied with a non-positive rate.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrRateUndetermined is returned when a rate cannot be derived and no nominal rate was supplied.
	ErrRateUndetermined = errors.New("exchange rate cannot be determined")

	// ErrEquivalenceMissing is returned when a foreign payment arrives without its LYD equivalent.
	ErrEquivalenceMissing = errors.New("LYD equivalent missing for foreign currency payment")

	// ErrOverpayment is returned when a payment exceeds the remaining balance.
	ErrOverpayment = errors.New("payment exceeds remaining balance")

	// ErrInvoiceAlreadyClosed is returned for any mutation of a closed invoice.
	ErrInvoiceAlreadyClosed = errors.New("invoice already closed")

	// ErrConcurrentModification is returned when the invoice changed underneath the caller.
	ErrConcurrentModification = errors.New("invoice was modified concurrently")

	// ErrOutstandingBalance is returned when closing an invoice that is not fully paid.
	ErrOutstandingBalance = errors.New("invoice has an outstanding balance")

	// ErrNothingPaid is returned when closing an invoice that received no payment.
	ErrNothingPaid = errors.New("invoice has no recorded payment")

	// ErrEmptyInvoice is returned when closing an invoice whose totals are all zero.
	ErrEmptyInvoice = errors.New("invoice totals are empty")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause so errors.Is keeps working through AppError.
func (e *AppError) Unwrap() error {
	if e.Err == nil && e.Code >= 500 {
		return ErrInternal
	}
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with the name of the missing resource.
func NewNotFoundError(resource string) error {
	return fmt.Errorf("%s: %w", resource, ErrNotFound)
}
