package ledgersync

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/application/usecase/actualitem"
	"github.com/smartspend/backend/internal/application/usecase/budget"
	"github.com/smartspend/backend/internal/application/usecase/dashboard"
	"github.com/smartspend/backend/internal/application/usecase/planneditem"
	"github.com/smartspend/backend/internal/domain/entity"
)

// LocalDurable runs durable writes in-process through the ledger use cases.
type LocalDurable struct {
	getSnapshot   *dashboard.GetSnapshotUseCase
	updateBudget  *budget.UpdateBudgetUseCase
	createPlanned *planneditem.CreatePlannedItemUseCase
	updatePlanned *planneditem.UpdatePlannedItemUseCase
	deletePlanned *planneditem.DeletePlannedItemUseCase
	createActual  *actualitem.CreateActualItemUseCase
	updateActual  *actualitem.UpdateActualItemUseCase
	deleteActual  *actualitem.DeleteActualItemUseCase
}

var _ DurableLedger = (*LocalDurable)(nil)

// NewLocalDurable creates a LocalDurable over repo.
func NewLocalDurable(repo adapter.LedgerRepository, ids adapter.IDGenerator) *LocalDurable {
	return &LocalDurable{
		getSnapshot:   dashboard.NewGetSnapshotUseCase(repo),
		updateBudget:  budget.NewUpdateBudgetUseCase(repo),
		createPlanned: planneditem.NewCreatePlannedItemUseCase(repo, ids),
		updatePlanned: planneditem.NewUpdatePlannedItemUseCase(repo),
		deletePlanned: planneditem.NewDeletePlannedItemUseCase(repo),
		createActual:  actualitem.NewCreateActualItemUseCase(repo, ids),
		updateActual:  actualitem.NewUpdateActualItemUseCase(repo),
		deleteActual:  actualitem.NewDeleteActualItemUseCase(repo),
	}
}

// Snapshot reads the durable ledger.
func (d *LocalDurable) Snapshot(ctx context.Context) (*entity.FinancialSnapshot, error) {
	out, err := d.getSnapshot.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return out.Snapshot, nil
}

// SaveBudget stores the budget amount.
func (d *LocalDurable) SaveBudget(ctx context.Context, amount decimal.Decimal) error {
	_, err := d.updateBudget.Execute(ctx, budget.UpdateBudgetInput{Amount: amount})
	return err
}

// CreatePlannedItem stores a new planned item under its local id.
func (d *LocalDurable) CreatePlannedItem(ctx context.Context, item entity.PlannedItem) error {
	_, err := d.createPlanned.Execute(ctx, planneditem.CreatePlannedItemInput{
		ID:             item.ID,
		Name:           item.Name,
		TargetQuantity: item.TargetQuantity,
		PricePerUnit:   item.PricePerUnit,
	})
	return err
}

// UpdatePlannedItem stores the editable fields of item.
func (d *LocalDurable) UpdatePlannedItem(ctx context.Context, item entity.PlannedItem) error {
	_, err := d.updatePlanned.Execute(ctx, planneditem.UpdatePlannedItemInput{
		ID:             item.ID,
		Name:           item.Name,
		TargetQuantity: item.TargetQuantity,
		PricePerUnit:   item.PricePerUnit,
	})
	return err
}

// DeletePlannedItem deletes the planned item.
func (d *LocalDurable) DeletePlannedItem(ctx context.Context, id string) error {
	_, err := d.deletePlanned.Execute(ctx, id)
	return err
}

// CreateActualItem stores a new actual item under its local id.
func (d *LocalDurable) CreateActualItem(ctx context.Context, item entity.ActualItem) error {
	_, err := d.createActual.Execute(ctx, actualitem.CreateActualItemInput{
		ID:            item.ID,
		Name:          item.Name,
		Quantity:      item.Quantity,
		TotalCost:     item.TotalCost,
		Date:          item.Date,
		PlannedItemID: item.LinkedID(),
	})
	return err
}

// UpdateActualItem replaces the actual item.
func (d *LocalDurable) UpdateActualItem(ctx context.Context, item entity.ActualItem) error {
	_, err := d.updateActual.Execute(ctx, actualitem.UpdateActualItemInput{
		ID:            item.ID,
		Name:          item.Name,
		Quantity:      item.Quantity,
		TotalCost:     item.TotalCost,
		Date:          item.Date,
		PlannedItemID: item.LinkedID(),
	})
	return err
}

// DeleteActualItem deletes the actual item.
func (d *LocalDurable) DeleteActualItem(ctx context.Context, id string) error {
	return d.deleteActual.Execute(ctx, id)
}
