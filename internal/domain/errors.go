package domain

import "fmt"

// Error is a typed, recoverable domain error. Every precondition
// violation in the ledger surfaces as one of these; callers map the
// code to a user-facing message and allow retry.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	ErrCodeValidation        = "VALIDATION"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeState             = "STATE"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
)

// NewValidationError reports malformed or semantically invalid input.
func NewValidationError(format string, args ...any) error {
	return &Error{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports an unknown entity id.
func NewNotFoundError(format string, args ...any) error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewUnauthorizedError reports a caller whose role lacks the
// capability for the requested operation.
func NewUnauthorizedError(format string, args ...any) error {
	return &Error{Code: ErrCodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// NewStateError reports an operation attempted from a lifecycle state
// that does not permit it.
func NewStateError(format string, args ...any) error {
	return &Error{Code: ErrCodeState, Message: fmt.Sprintf(format, args...)}
}

// NewInsufficientStockError reports an approval that would overdraw an
// asset's available stock.
func NewInsufficientStockError(assetName string, requested, available int) error {
	return &Error{
		Code:    ErrCodeInsufficientStock,
		Message: fmt.Sprintf("asset %q: requested %d but only %d available", assetName, requested, available),
	}
}
