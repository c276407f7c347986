// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
	"github.com/smartspend/backend/internal/domain/reconciliation"
	"github.com/smartspend/backend/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface.
//
// Writes are applied one at a time under mu. On Postgres the planned item
// rows touched by a write are also locked with SELECT ... FOR UPDATE so that
// several API instances sharing a database still serialize per planned item.
type ledgerRepository struct {
	db *gorm.DB
	mu sync.RWMutex
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// GetBudget returns the budget, or a zero budget when none was saved yet.
func (r *ledgerRepository) GetBudget(ctx context.Context) (*entity.Budget, error) {
	return r.getBudget(r.db.WithContext(ctx))
}

// SaveBudget creates or replaces the budget row.
func (r *ledgerRepository) SaveBudget(ctx context.Context, budget *entity.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	budgetModel := model.BudgetFromEntity(budget)
	budgetModel.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(budgetModel)
	return result.Error
}

// ListPlannedItems returns all planned items in creation order.
func (r *ledgerRepository) ListPlannedItems(ctx context.Context) ([]*entity.PlannedItem, error) {
	return listPlanned(r.db.WithContext(ctx))
}

// FindPlannedItemByID retrieves a planned item by its ID.
func (r *ledgerRepository) FindPlannedItemByID(ctx context.Context, id string) (*entity.PlannedItem, error) {
	var plannedModel model.PlannedItemModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&plannedModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPlannedItemNotFound
		}
		return nil, result.Error
	}
	return plannedModel.ToEntity(), nil
}

// CreatePlannedItem stores a new planned item. Purchased quantity always starts at zero.
func (r *ledgerRepository) CreatePlannedItem(ctx context.Context, item *entity.PlannedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PlannedItemModel{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerror.ErrDuplicateID
		}

		plannedModel := model.PlannedItemFromEntity(item)
		plannedModel.PurchasedQuantity = 0
		if err := tx.Create(plannedModel).Error; err != nil {
			return err
		}
		item.PurchasedQuantity = 0
		return nil
	})
}

// UpdatePlannedItem writes the user-editable fields. Purchased quantity is never written here.
func (r *ledgerRepository) UpdatePlannedItem(ctx context.Context, item *entity.PlannedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := findPlannedForUpdate(tx, item.ID)
		if err != nil {
			return err
		}

		result := tx.Model(stored).Updates(map[string]any{
			"name":            item.Name,
			"target_quantity": item.TargetQuantity,
			"price_per_unit":  entity.RoundMoney(item.PricePerUnit),
			"updated_at":      time.Now().UTC(),
		})
		if result.Error != nil {
			return result.Error
		}

		item.PurchasedQuantity = stored.PurchasedQuantity
		return nil
	})
}

// DeletePlannedItem detaches the linked actual items and removes the planned item.
func (r *ledgerRepository) DeletePlannedItem(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	detached := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findPlannedForUpdate(tx, id); err != nil {
			return err
		}

		var linkedModels []model.ActualItemModel
		if err := tx.Where("planned_item_id = ?", id).Find(&linkedModels).Error; err != nil {
			return err
		}

		linked := make([]entity.ActualItem, len(linkedModels))
		for i := range linkedModels {
			linked[i] = *linkedModels[i].ToEntity()
		}

		toDetach := reconciliation.OnPlanDelete(id, linked)
		if len(toDetach) > 0 {
			ids := make([]string, len(toDetach))
			for i, item := range toDetach {
				ids[i] = item.ID
			}
			result := tx.Model(&model.ActualItemModel{}).
				Where("id IN ?", ids).
				Updates(map[string]any{
					"planned_item_id": gorm.Expr("NULL"),
					"updated_at":      time.Now().UTC(),
				})
			if result.Error != nil {
				return result.Error
			}
		}

		if err := tx.Delete(&model.PlannedItemModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		detached = len(toDetach)
		return nil
	})
	return detached, err
}

// ListActualItems returns all actual items, newest date first.
func (r *ledgerRepository) ListActualItems(ctx context.Context) ([]*entity.ActualItem, error) {
	return listActual(r.db.WithContext(ctx))
}

// FindActualItemByID retrieves an actual item by its ID.
func (r *ledgerRepository) FindActualItemByID(ctx context.Context, id string) (*entity.ActualItem, error) {
	actualModel, err := findActual(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return actualModel.ToEntity(), nil
}

// CreateActualItem stores the actual item and reconciles its planned item in one transaction.
func (r *ledgerRepository) CreateActualItem(ctx context.Context, item *entity.ActualItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ActualItemModel{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerror.ErrDuplicateID
		}

		if err := checkReference(tx, item.PlannedItemID); err != nil {
			return err
		}

		if err := tx.Create(model.ActualItemFromEntity(item)).Error; err != nil {
			return err
		}

		return applyAdjustment(tx, reconciliation.OnCreate(*item))
	})
}

// UpdateActualItem replaces the actual item and reconciles the old and new planned items.
func (r *ledgerRepository) UpdateActualItem(ctx context.Context, item *entity.ActualItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldModel, err := findActual(tx, item.ID)
		if err != nil {
			return err
		}

		if err := checkReference(tx, item.PlannedItemID); err != nil {
			return err
		}

		actualModel := model.ActualItemFromEntity(item)
		actualModel.UpdatedAt = time.Now().UTC()
		result := tx.Model(&model.ActualItemModel{ID: item.ID}).
			Select("name", "quantity", "total_cost", "date", "planned_item_id", "updated_at").
			Updates(actualModel)
		if result.Error != nil {
			return result.Error
		}

		return applyAdjustment(tx, reconciliation.OnUpdate(*oldModel.ToEntity(), *item))
	})
}

// DeleteActualItem removes the actual item and reverts its contribution.
func (r *ledgerRepository) DeleteActualItem(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldModel, err := findActual(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Delete(&model.ActualItemModel{}, "id = ?", id).Error; err != nil {
			return err
		}

		return applyAdjustment(tx, reconciliation.OnDelete(*oldModel.ToEntity()))
	})
}

// Snapshot reads the three collections inside one read transaction.
func (r *ledgerRepository) Snapshot(ctx context.Context) (*entity.FinancialSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var opts []*sql.TxOptions
	if isPostgres(r.db) {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}

	snapshot := &entity.FinancialSnapshot{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		budget, err := r.getBudget(tx)
		if err != nil {
			return err
		}

		planned, err := listPlanned(tx)
		if err != nil {
			return err
		}

		actuals, err := listActual(tx)
		if err != nil {
			return err
		}

		snapshot.Budget = budget.Amount
		snapshot.PlannedItems = make([]entity.PlannedItem, len(planned))
		for i, item := range planned {
			snapshot.PlannedItems[i] = *item
		}
		snapshot.ActualItems = make([]entity.ActualItem, len(actuals))
		for i, item := range actuals {
			snapshot.ActualItems[i] = *item
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *ledgerRepository) getBudget(db *gorm.DB) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := db.Where("id = ?", entity.MainBudgetID).Limit(1).Find(&budgetModel)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NewBudget(decimal.Zero), nil
	}
	return budgetModel.ToEntity(), nil
}

// applyAdjustment writes the reconciled purchased quantity of every planned item the adjustment touches.
func applyAdjustment(tx *gorm.DB, adj reconciliation.Adjustment) error {
	ids := adj.PlannedItemIDs()
	// lock in a stable order
	sort.Strings(ids)

	for _, id := range ids {
		planned, err := findPlannedForUpdate(tx, id)
		if errors.Is(err, domainerror.ErrPlannedItemNotFound) {
			// the planned item is gone; its actual items were detached with it
			continue
		}
		if err != nil {
			return err
		}

		purchased := adj.Apply(id, planned.PurchasedQuantity)
		if purchased == planned.PurchasedQuantity {
			continue
		}
		if err := tx.Model(planned).Update("purchased_quantity", purchased).Error; err != nil {
			return err
		}
	}
	return nil
}

// checkReference verifies that a non-nil planned item reference exists.
func checkReference(tx *gorm.DB, plannedItemID *string) error {
	if plannedItemID == nil {
		return nil
	}
	if _, err := findPlannedForUpdate(tx, *plannedItemID); err != nil {
		if errors.Is(err, domainerror.ErrPlannedItemNotFound) {
			return domainerror.ErrPlannedItemReferenceNotFound
		}
		return err
	}
	return nil
}

func findPlannedForUpdate(tx *gorm.DB, id string) (*model.PlannedItemModel, error) {
	query := tx
	if isPostgres(tx) {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var plannedModel model.PlannedItemModel
	result := query.Where("id = ?", id).Limit(1).Find(&plannedModel)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerror.ErrPlannedItemNotFound
	}
	return &plannedModel, nil
}

func findActual(db *gorm.DB, id string) (*model.ActualItemModel, error) {
	var actualModel model.ActualItemModel
	result := db.Where("id = ?", id).First(&actualModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrActualItemNotFound
		}
		return nil, result.Error
	}
	return &actualModel, nil
}

func listPlanned(db *gorm.DB) ([]*entity.PlannedItem, error) {
	var plannedModels []model.PlannedItemModel
	result := db.Order("created_at ASC, id ASC").Find(&plannedModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.PlannedItem, len(plannedModels))
	for i := range plannedModels {
		items[i] = plannedModels[i].ToEntity()
	}
	return items, nil
}

func listActual(db *gorm.DB) ([]*entity.ActualItem, error) {
	var actualModels []model.ActualItemModel
	result := db.Order("date DESC, created_at DESC, id ASC").Find(&actualModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.ActualItem, len(actualModels))
	for i := range actualModels {
		items[i] = actualModels[i].ToEntity()
	}
	return items, nil
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector != nil && db.Dialector.Name() == "postgres"
}
