package ledgersync

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/domain/entity"
)

// DurableLedger is the authoritative store behind the facade. Implementations
// reconcile purchased quantities themselves; the facade only mirrors the result.
type DurableLedger interface {
	Snapshot(ctx context.Context) (*entity.FinancialSnapshot, error)
	SaveBudget(ctx context.Context, amount decimal.Decimal) error
	CreatePlannedItem(ctx context.Context, item entity.PlannedItem) error
	UpdatePlannedItem(ctx context.Context, item entity.PlannedItem) error
	DeletePlannedItem(ctx context.Context, id string) error
	CreateActualItem(ctx context.Context, item entity.ActualItem) error
	UpdateActualItem(ctx context.Context, item entity.ActualItem) error
	DeleteActualItem(ctx context.Context, id string) error
}

// Operation names the user action behind a durable write.
type Operation string

const (
	OpUpdateBudget      Operation = "update_budget"
	OpAddPlannedItem    Operation = "add_planned_item"
	OpUpdatePlannedItem Operation = "update_planned_item"
	OpDeletePlannedItem Operation = "delete_planned_item"
	OpAddActualItem     Operation = "add_actual_item"
	OpUpdateActualItem  Operation = "update_actual_item"
	OpDeleteActualItem  Operation = "delete_actual_item"
	OpMarkPurchased     Operation = "mark_purchased"
)

// Conflict records a durable write that failed after its optimistic state
// was already published. The local state stays as applied until Refetch.
type Conflict struct {
	Operation Operation
	EntityID  string
	Err       error
	At        time.Time
}

// Error implements the error interface.
func (c Conflict) Error() string {
	return fmt.Sprintf("%s %s: %v", c.Operation, c.EntityID, c.Err)
}

// Unwrap returns the durable error.
func (c Conflict) Unwrap() error {
	return c.Err
}
