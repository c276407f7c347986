package ledgerclient

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/config"
	"github.com/smartspend/backend/internal/application/ledgersync"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
	"github.com/smartspend/backend/internal/infra/dependency"
	"github.com/smartspend/backend/internal/integration/adapters"
	"github.com/smartspend/backend/internal/testutil"
)

var testDay = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Gemini.APIKey = ""

	injector := dependency.NewInjector(cfg, testutil.NewLedgerDB(t), nil)
	server := httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	t.Cleanup(server.Close)

	return New(server.URL+"/", 5*time.Second)
}

func TestClient_WritesAndSnapshot(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.SaveBudget(ctx, decimal.RequireFromString("250")); err != nil {
		t.Fatalf("failed to save budget: %v", err)
	}
	if err := client.CreatePlannedItem(ctx, *entity.NewPlannedItem("p1", "Eggs", 12, decimal.RequireFromString("0.25"))); err != nil {
		t.Fatalf("failed to create planned item: %v", err)
	}
	if err := client.CreateActualItem(ctx, *entity.NewActualItem("a1", "Eggs", 6, decimal.RequireFromString("1.50"), testDay, "p1")); err != nil {
		t.Fatalf("failed to create actual item: %v", err)
	}

	snapshot, err := client.Snapshot(ctx)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if !snapshot.Budget.Equal(decimal.RequireFromString("250")) {
		t.Errorf("expected budget 250, got %s", snapshot.Budget)
	}
	if len(snapshot.PlannedItems) != 1 || snapshot.PlannedItems[0].PurchasedQuantity != 6 {
		t.Fatalf("expected purchased quantity 6, got %+v", snapshot.PlannedItems)
	}
	if len(snapshot.ActualItems) != 1 || !snapshot.ActualItems[0].IsLinkedTo("p1") || !snapshot.ActualItems[0].Date.Equal(testDay) {
		t.Fatalf("unexpected actual items %+v", snapshot.ActualItems)
	}

	relinked := snapshot.ActualItems[0]
	relinked.Quantity = 8
	relinked.TotalCost = decimal.RequireFromString("2.00")
	if err := client.UpdateActualItem(ctx, relinked); err != nil {
		t.Fatalf("failed to update actual item: %v", err)
	}
	if err := client.DeletePlannedItem(ctx, "p1"); err != nil {
		t.Fatalf("failed to delete planned item: %v", err)
	}

	snapshot, err = client.Snapshot(ctx)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if len(snapshot.PlannedItems) != 0 {
		t.Errorf("expected no planned items, got %+v", snapshot.PlannedItems)
	}
	if len(snapshot.ActualItems) != 1 || snapshot.ActualItems[0].PlannedItemID != nil || snapshot.ActualItems[0].Quantity != 8 {
		t.Errorf("expected detached actual item with quantity 8, got %+v", snapshot.ActualItems)
	}

	if err := client.DeleteActualItem(ctx, "a1"); err != nil {
		t.Fatalf("failed to delete actual item: %v", err)
	}
}

func TestClient_ErrorsKeepTheirKind(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		kind     error
		wantCode domainerror.LedgerErrorCode
	}{
		{
			name: "invalid quantity",
			call: func() error {
				return client.CreateActualItem(ctx, *entity.NewActualItem("a1", "Gum", 0, decimal.Zero, testDay, ""))
			},
			kind:     domainerror.ErrValidation,
			wantCode: domainerror.ErrCodeInvalidQuantity,
		},
		{
			name: "unknown planned reference",
			call: func() error {
				return client.CreateActualItem(ctx, *entity.NewActualItem("a2", "Gum", 1, decimal.Zero, testDay, "missing"))
			},
			kind:     domainerror.ErrValidation,
			wantCode: domainerror.ErrCodeUnknownPlannedItemRef,
		},
		{
			name:     "missing actual item",
			call:     func() error { return client.DeleteActualItem(ctx, "missing") },
			kind:     domainerror.ErrNotFound,
			wantCode: domainerror.ErrCodeActualItemNotFound,
		},
		{
			name: "missing planned item",
			call: func() error {
				return client.UpdatePlannedItem(ctx, *entity.NewPlannedItem("missing", "Tea", 1, decimal.Zero))
			},
			kind:     domainerror.ErrNotFound,
			wantCode: domainerror.ErrCodePlannedItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			var ledgerErr *domainerror.LedgerError
			if !errors.As(err, &ledgerErr) || ledgerErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestClient_UnreachableServerIsStorageError(t *testing.T) {
	server := httptest.NewServer(nil)
	url := server.URL
	server.Close()

	err := New(url, time.Second).SaveBudget(context.Background(), decimal.Zero)
	if !errors.Is(err, domainerror.ErrStorage) {
		t.Errorf("expected storage error, got %v", err)
	}
}

func TestClient_BacksFacade(t *testing.T) {
	client := newTestClient(t)
	facade := ledgersync.New(client, adapters.UUIDGenerator{})
	defer facade.Close()
	ctx := context.Background()

	if err := facade.UpdateBudget(decimal.RequireFromString("80")); err != nil {
		t.Fatalf("failed to update budget: %v", err)
	}
	planned, err := facade.AddPlannedItem(ledgersync.PlannedItemInput{Name: "Bread", TargetQuantity: 2, PricePerUnit: decimal.RequireFromString("3.10")})
	if err != nil {
		t.Fatalf("failed to add planned item: %v", err)
	}
	if _, err := facade.MarkPurchased(planned.ID, 1, decimal.RequireFromString("3.10"), testDay); err != nil {
		t.Fatalf("failed to mark purchased: %v", err)
	}
	if _, err := facade.AddActualItem(ledgersync.ActualItemInput{Name: "Jam", Quantity: 1, TotalCost: decimal.RequireFromString("4.20"), Date: testDay}); err != nil {
		t.Fatalf("failed to add actual item: %v", err)
	}

	if err := facade.Flush(ctx); err != nil {
		t.Fatalf("failed to flush: %v", err)
	}
	if conflicts := facade.Conflicts(); len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", conflicts)
	}

	local := facade.State()
	durable, err := client.Snapshot(ctx)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if !local.Budget.Equal(durable.Budget) {
		t.Errorf("budget mismatch: local %s durable %s", local.Budget, durable.Budget)
	}
	if len(durable.PlannedItems) != 1 || durable.PlannedItems[0].PurchasedQuantity != local.PlannedItems[0].PurchasedQuantity {
		t.Errorf("purchased quantity mismatch: local %+v durable %+v", local.PlannedItems, durable.PlannedItems)
	}
	if len(durable.ActualItems) != len(local.ActualItems) {
		t.Errorf("expected %d actual items, got %d", len(local.ActualItems), len(durable.ActualItems))
	}
}
