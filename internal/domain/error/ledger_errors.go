// Package error defines domain-specific errors for the SmartSpend ledger.
package error

import (
	"errors"
	"strings"
)

// Error kinds. Every LedgerError unwraps to exactly one of these, so callers
// can branch on the kind with errors.Is without knowing individual codes.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
	ErrProvider   = errors.New("provider error")
)

// Ledger domain errors.
var (
	// ErrInvalidName is returned when an item name is empty.
	ErrInvalidName = errors.New("name must not be empty")

	// ErrInvalidQuantity is returned when an actual item quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrInvalidTargetQuantity is returned when a planned target quantity is negative.
	ErrInvalidTargetQuantity = errors.New("target quantity must not be negative")

	// ErrInvalidAmount is returned when a money amount is negative.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrInvalidDate is returned when a purchase date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDerivedFieldMutation is returned when a caller tries to set purchasedQuantity directly.
	ErrDerivedFieldMutation = errors.New("purchased quantity is derived from actual items")

	// ErrDuplicateID is returned when an item with the same id already exists.
	ErrDuplicateID = errors.New("item with this id already exists")

	// ErrPlannedItemReferenceNotFound is returned when an actual item links to a planned item that does not exist.
	ErrPlannedItemReferenceNotFound = errors.New("referenced planned item does not exist")

	// ErrPlannedItemNotFound is returned when a planned item is not found.
	ErrPlannedItemNotFound = errors.New("planned item not found")

	// ErrActualItemNotFound is returned when an actual item is not found.
	ErrActualItemNotFound = errors.New("actual item not found")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidName           LedgerErrorCode = "LDG-010001"
	ErrCodeInvalidQuantity       LedgerErrorCode = "LDG-010002"
	ErrCodeInvalidTargetQuantity LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidAmount         LedgerErrorCode = "LDG-010004"
	ErrCodeInvalidDate           LedgerErrorCode = "LDG-010005"
	ErrCodeDerivedFieldMutation  LedgerErrorCode = "LDG-010006"
	ErrCodeDuplicateID           LedgerErrorCode = "LDG-010007"
	ErrCodeUnknownPlannedItemRef LedgerErrorCode = "LDG-010008"
	ErrCodeMissingFields         LedgerErrorCode = "LDG-010009"
	ErrCodeInvalidRequest        LedgerErrorCode = "LDG-010010"

	// Not found errors (02XXXX)
	ErrCodePlannedItemNotFound LedgerErrorCode = "LDG-020001"
	ErrCodeActualItemNotFound  LedgerErrorCode = "LDG-020002"

	// Storage errors (03XXXX)
	ErrCodeStorageFailure LedgerErrorCode = "LDG-030001"

	// Request errors (05XXXX)
	ErrCodeRateLimited LedgerErrorCode = "LDG-050001"
)

// Kind returns the error kind sentinel for the code's category.
func (c LedgerErrorCode) Kind() error {
	switch {
	case strings.HasPrefix(string(c), "LDG-01"):
		return ErrValidation
	case strings.HasPrefix(string(c), "LDG-02"):
		return ErrNotFound
	default:
		return ErrStorage
	}
}

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error together with the kind sentinel.
func (e *LedgerError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code.Kind()}
	}
	return []error{e.Err, e.Code.Kind()}
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewStorageError wraps an infrastructure failure.
func NewStorageError(action string, err error) *LedgerError {
	return NewLedgerError(ErrCodeStorageFailure, "failed to "+action, err)
}

// FromRepository maps an error returned by a ledger repository onto a LedgerError.
// Errors that are already LedgerErrors pass through unchanged.
func FromRepository(action string, err error) error {
	if err == nil {
		return nil
	}

	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr
	}

	switch {
	case errors.Is(err, ErrPlannedItemNotFound):
		return NewLedgerError(ErrCodePlannedItemNotFound, "planned item not found", err)
	case errors.Is(err, ErrActualItemNotFound):
		return NewLedgerError(ErrCodeActualItemNotFound, "actual item not found", err)
	case errors.Is(err, ErrPlannedItemReferenceNotFound):
		return NewLedgerError(ErrCodeUnknownPlannedItemRef, "plannedItemId does not reference an existing planned item", err)
	case errors.Is(err, ErrDuplicateID):
		return NewLedgerError(ErrCodeDuplicateID, "an item with this id already exists", err)
	case errors.Is(err, ErrDerivedFieldMutation):
		return NewLedgerError(ErrCodeDerivedFieldMutation, "purchasedQuantity cannot be set directly", err)
	default:
		return NewStorageError(action, err)
	}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
