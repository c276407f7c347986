package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/smartspend/backend/internal/domain/error"
)

func TestPlannedItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    *PlannedItem
		wantErr error
	}{
		{"valid", NewPlannedItem("p1", "Milk", 2, decimal.RequireFromString("1.99")), nil},
		{"zero target allowed", NewPlannedItem("p1", "Milk", 0, decimal.Zero), nil},
		{"blank name", NewPlannedItem("p1", "   ", 2, decimal.Zero), domainerror.ErrInvalidName},
		{"negative target", NewPlannedItem("p1", "Milk", -1, decimal.Zero), domainerror.ErrInvalidTargetQuantity},
		{"negative price", NewPlannedItem("p1", "Milk", 1, decimal.RequireFromString("-0.01")), domainerror.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, domainerror.ErrValidation) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestPlannedItemProgress(t *testing.T) {
	item := NewPlannedItem("p1", "Milk", 3, decimal.RequireFromString("2.50"))

	if !item.PlannedTotal().Equal(decimal.RequireFromString("7.50")) {
		t.Errorf("expected planned total 7.50, got %s", item.PlannedTotal())
	}
	if item.IsComplete() || item.RemainingQuantity() != 3 {
		t.Errorf("expected 3 remaining, got %d", item.RemainingQuantity())
	}

	item.PurchasedQuantity = 5
	if !item.IsComplete() {
		t.Error("expected over-purchased item to be complete")
	}
	if item.RemainingQuantity() != 0 {
		t.Errorf("expected 0 remaining, got %d", item.RemainingQuantity())
	}
}

func TestActualItemValidate(t *testing.T) {
	day := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		item    *ActualItem
		wantErr error
	}{
		{"valid", NewActualItem("a1", "Milk", 1, decimal.RequireFromString("1.99"), day, "p1"), nil},
		{"free item", NewActualItem("a1", "Sample", 1, decimal.Zero, day, ""), nil},
		{"zero quantity", NewActualItem("a1", "Milk", 0, decimal.Zero, day, ""), domainerror.ErrInvalidQuantity},
		{"negative cost", NewActualItem("a1", "Milk", 1, decimal.NewFromInt(-1), day, ""), domainerror.ErrInvalidAmount},
		{"missing date", NewActualItem("a1", "Milk", 1, decimal.Zero, time.Time{}, ""), domainerror.ErrInvalidDate},
		{"blank name", NewActualItem("a1", "", 1, decimal.Zero, day, ""), domainerror.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestActualItemLinking(t *testing.T) {
	item := NewActualItem("a1", "Milk", 2, decimal.RequireFromString("3.00"), time.Now(), "")
	if item.PlannedItemID != nil || item.LinkedID() != "" {
		t.Fatal("expected empty id to mean unlinked")
	}

	item.SetPlannedItemID("p1")
	if !item.IsLinkedTo("p1") || item.IsLinkedTo("p2") {
		t.Errorf("expected item linked to p1, got %q", item.LinkedID())
	}

	clone := item.Clone()
	item.SetPlannedItemID("p2")
	if !clone.IsLinkedTo("p1") {
		t.Error("clone must not share the link pointer")
	}

	if !item.UnitCost().Equal(decimal.RequireFromString("1.50")) {
		t.Errorf("expected unit cost 1.50, got %s", item.UnitCost())
	}
}

func TestCalendarDate(t *testing.T) {
	got := CalendarDate(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC))
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	parsed, err := ParseDate("2024-02-29")
	if err != nil || !parsed.Equal(want) {
		t.Errorf("expected %v, got %v (%v)", want, parsed, err)
	}

	if _, err := ParseDate("29/02/2024"); !errors.Is(err, domainerror.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
