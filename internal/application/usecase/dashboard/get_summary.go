package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

var hundred = decimal.NewFromInt(100)

// PlannedProgress is the purchase progress of one planned item.
type PlannedProgress struct {
	ID                string
	Name              string
	TargetQuantity    int
	PurchasedQuantity int
	RemainingQuantity int
	PlannedTotal      decimal.Decimal
	IsComplete        bool
}

// GetSummaryOutput represents the budget overview.
type GetSummaryOutput struct {
	Budget              decimal.Decimal
	TotalPlanned        decimal.Decimal
	TotalActual         decimal.Decimal
	RemainingBudget     decimal.Decimal
	IsOverBudget        bool
	SpendingProgress    decimal.Decimal // Percent of budget spent, capped at 100
	PlannedItemCount    int
	FullyPurchasedCount int
	ActualItemCount     int
	Items               []PlannedProgress
}

// GetSummaryUseCase computes the budget overview from a ledger snapshot.
type GetSummaryUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(ledgerRepo adapter.LedgerRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute reads a snapshot and summarizes it.
func (uc *GetSummaryUseCase) Execute(ctx context.Context) (*GetSummaryOutput, error) {
	snapshot, err := uc.ledgerRepo.Snapshot(ctx)
	if err != nil {
		return nil, domainerror.FromRepository("read ledger snapshot", err)
	}
	return Summarize(snapshot), nil
}

// Summarize computes the overview for a snapshot.
func Summarize(snapshot *entity.FinancialSnapshot) *GetSummaryOutput {
	out := &GetSummaryOutput{
		Budget:           snapshot.Budget,
		TotalPlanned:     decimal.Zero,
		TotalActual:      decimal.Zero,
		SpendingProgress: decimal.Zero,
		PlannedItemCount: len(snapshot.PlannedItems),
		ActualItemCount:  len(snapshot.ActualItems),
		Items:            make([]PlannedProgress, 0, len(snapshot.PlannedItems)),
	}

	for i := range snapshot.PlannedItems {
		item := &snapshot.PlannedItems[i]
		total := item.PlannedTotal()
		out.TotalPlanned = out.TotalPlanned.Add(total)
		if item.IsComplete() {
			out.FullyPurchasedCount++
		}
		out.Items = append(out.Items, PlannedProgress{
			ID:                item.ID,
			Name:              item.Name,
			TargetQuantity:    item.TargetQuantity,
			PurchasedQuantity: item.PurchasedQuantity,
			RemainingQuantity: item.RemainingQuantity(),
			PlannedTotal:      total,
			IsComplete:        item.IsComplete(),
		})
	}

	for i := range snapshot.ActualItems {
		out.TotalActual = out.TotalActual.Add(snapshot.ActualItems[i].TotalCost)
	}

	out.RemainingBudget = snapshot.Budget.Sub(out.TotalActual)
	out.IsOverBudget = out.RemainingBudget.IsNegative()

	if snapshot.Budget.IsPositive() {
		progress := out.TotalActual.Div(snapshot.Budget).Mul(hundred)
		if progress.GreaterThan(hundred) {
			progress = hundred
		}
		out.SpendingProgress = progress.Round(2)
	}

	return out
}
