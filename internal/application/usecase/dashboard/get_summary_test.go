package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/domain/entity"
)

func TestSummarize(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	milk := entity.NewPlannedItem("p1", "Milk", 2, decimal.RequireFromString("1.50"))
	milk.PurchasedQuantity = 2
	bread := entity.NewPlannedItem("p2", "Bread", 3, decimal.RequireFromString("2.00"))
	bread.PurchasedQuantity = 1

	snapshot := &entity.FinancialSnapshot{
		Budget:       decimal.RequireFromString("20.00"),
		PlannedItems: []entity.PlannedItem{*milk, *bread},
		ActualItems: []entity.ActualItem{
			*entity.NewActualItem("a1", "Milk", 2, decimal.RequireFromString("3.10"), day, "p1"),
			*entity.NewActualItem("a2", "Bread", 1, decimal.RequireFromString("2.05"), day, "p2"),
			*entity.NewActualItem("a3", "Snack", 1, decimal.RequireFromString("0.85"), day, ""),
		},
	}

	summary := Summarize(snapshot)

	if !summary.TotalPlanned.Equal(decimal.RequireFromString("9.00")) {
		t.Errorf("expected total planned 9.00, got %s", summary.TotalPlanned)
	}
	if !summary.TotalActual.Equal(decimal.RequireFromString("6.00")) {
		t.Errorf("expected total actual 6.00, got %s", summary.TotalActual)
	}
	if !summary.RemainingBudget.Equal(decimal.RequireFromString("14.00")) {
		t.Errorf("expected remaining 14.00, got %s", summary.RemainingBudget)
	}
	if summary.IsOverBudget {
		t.Error("expected not over budget")
	}
	if !summary.SpendingProgress.Equal(decimal.RequireFromString("30")) {
		t.Errorf("expected progress 30, got %s", summary.SpendingProgress)
	}
	if summary.FullyPurchasedCount != 1 {
		t.Errorf("expected 1 fully purchased item, got %d", summary.FullyPurchasedCount)
	}
	if summary.Items[1].RemainingQuantity != 2 {
		t.Errorf("expected bread remaining 2, got %d", summary.Items[1].RemainingQuantity)
	}
}

func TestSummarizeEdges(t *testing.T) {
	tests := []struct {
		name         string
		budget       string
		spent        string
		wantProgress string
		wantOver     bool
	}{
		{"zero budget", "0", "5.00", "0", true},
		{"over budget caps at 100", "10.00", "25.00", "100", true},
		{"nothing spent", "10.00", "0", "0", false},
		{"exactly spent", "10.00", "10.00", "100", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &entity.FinancialSnapshot{Budget: decimal.RequireFromString(tt.budget)}
			if spent := decimal.RequireFromString(tt.spent); spent.IsPositive() {
				snapshot.ActualItems = []entity.ActualItem{
					*entity.NewActualItem("a1", "Thing", 1, spent, time.Now(), ""),
				}
			}

			summary := Summarize(snapshot)
			if !summary.SpendingProgress.Equal(decimal.RequireFromString(tt.wantProgress)) {
				t.Errorf("expected progress %s, got %s", tt.wantProgress, summary.SpendingProgress)
			}
			if summary.IsOverBudget != tt.wantOver {
				t.Errorf("expected over budget %v, got %v", tt.wantOver, summary.IsOverBudget)
			}
		})
	}
}
