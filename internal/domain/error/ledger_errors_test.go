package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestLedgerErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		code LedgerErrorCode
		kind error
	}{
		{"validation", ErrCodeInvalidQuantity, ErrValidation},
		{"unknown reference is validation", ErrCodeUnknownPlannedItemRef, ErrValidation},
		{"planned not found", ErrCodePlannedItemNotFound, ErrNotFound},
		{"actual not found", ErrCodeActualItemNotFound, ErrNotFound},
		{"storage", ErrCodeStorageFailure, ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLedgerError(tt.code, "boom", nil)
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %v to be %v", err, tt.kind)
			}
		})
	}
}

func TestLedgerErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("save budget", cause)

	if !errors.Is(err, cause) {
		t.Error("expected storage error to unwrap to its cause")
	}
	if !errors.Is(err, ErrStorage) {
		t.Error("expected storage error to unwrap to ErrStorage")
	}
	if err.Error() != "failed to save budget: disk full" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestFromRepository(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode LedgerErrorCode
	}{
		{"planned not found", fmt.Errorf("lookup: %w", ErrPlannedItemNotFound), ErrCodePlannedItemNotFound},
		{"actual not found", ErrActualItemNotFound, ErrCodeActualItemNotFound},
		{"dangling reference", ErrPlannedItemReferenceNotFound, ErrCodeUnknownPlannedItemRef},
		{"duplicate", ErrDuplicateID, ErrCodeDuplicateID},
		{"unknown", errors.New("connection reset"), ErrCodeStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ledgerErr *LedgerError
			if !errors.As(FromRepository("do thing", tt.err), &ledgerErr) {
				t.Fatal("expected a LedgerError")
			}
			if ledgerErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, ledgerErr.Code)
			}
		})
	}

	if FromRepository("noop", nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestAdviceErrorIsProvider(t *testing.T) {
	err := NewAdviceError(ErrCodeAdviceTimeout, "timed out", true, nil)
	if !errors.Is(err, ErrProvider) {
		t.Error("expected advice error to be a provider error")
	}
	if errors.Is(err, ErrStorage) {
		t.Error("advice error must not be a storage error")
	}
}
