// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/domain/entity"
)

// Money is an amount serialized as a JSON number with two decimals.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON writes the amount as an unquoted number, e.g. 12.50.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// UpdateBudgetRequest represents the request body for setting the budget.
type UpdateBudgetRequest struct {
	Amount *Money `json:"amount" binding:"required"`
}

// BudgetResponse represents the budget in API responses.
type BudgetResponse struct {
	Amount Money `json:"amount"`
}

// PlannedItemRequest represents the request body for creating or updating a
// planned item. PurchasedQuantity is derived and only accepted when unchanged.
type PlannedItemRequest struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	TargetQuantity    *int   `json:"targetQuantity" binding:"required"`
	PricePerUnit      *Money `json:"pricePerUnit" binding:"required"`
	PurchasedQuantity *int   `json:"purchasedQuantity,omitempty"`
}

// PlannedItemResponse represents a planned item in API responses.
type PlannedItemResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	TargetQuantity    int    `json:"targetQuantity"`
	PurchasedQuantity int    `json:"purchasedQuantity"`
	PricePerUnit      Money  `json:"pricePerUnit"`
}

// ActualItemRequest represents the request body for creating or updating an
// actual item. A missing or null plannedItemId means unlinked.
type ActualItemRequest struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Quantity      *int    `json:"quantity" binding:"required"`
	TotalCost     *Money  `json:"totalCost" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	PlannedItemID *string `json:"plannedItemId"`
}

// MarkPurchasedRequest represents the request body for buying part of a
// planned item. Name defaults to the planned item's name.
type MarkPurchasedRequest struct {
	ID        string  `json:"id,omitempty"`
	Quantity  *int    `json:"quantity" binding:"required"`
	TotalCost *Money  `json:"totalCost" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	Name      *string `json:"name,omitempty"`
}

// ActualItemResponse represents an actual item in API responses.
type ActualItemResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	TotalCost     Money   `json:"totalCost"`
	Date          string  `json:"date"`
	PlannedItemID *string `json:"plannedItemId"`
}

// DeletePlannedItemResponse reports how many actual items were unlinked.
type DeletePlannedItemResponse struct {
	DetachedActualItems int `json:"detachedActualItems"`
}

// SnapshotResponse represents the whole ledger in one consistent read.
type SnapshotResponse struct {
	Budget       Money                 `json:"budget"`
	PlannedItems []PlannedItemResponse `json:"plannedItems"`
	ActualItems  []ActualItemResponse  `json:"actualItems"`
}

// ToPlannedItemResponse converts a domain PlannedItem to a PlannedItemResponse DTO.
func ToPlannedItemResponse(p *entity.PlannedItem) PlannedItemResponse {
	return PlannedItemResponse{
		ID:                p.ID,
		Name:              p.Name,
		TargetQuantity:    p.TargetQuantity,
		PurchasedQuantity: p.PurchasedQuantity,
		PricePerUnit:      NewMoney(p.PricePerUnit),
	}
}

// ToPlannedItemListResponse converts planned items to response DTOs.
func ToPlannedItemListResponse(items []*entity.PlannedItem) []PlannedItemResponse {
	responses := make([]PlannedItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToPlannedItemResponse(item))
	}
	return responses
}

// ToActualItemResponse converts a domain ActualItem to an ActualItemResponse DTO.
func ToActualItemResponse(a *entity.ActualItem) ActualItemResponse {
	response := ActualItemResponse{
		ID:        a.ID,
		Name:      a.Name,
		Quantity:  a.Quantity,
		TotalCost: NewMoney(a.TotalCost),
		Date:      a.Date.Format(entity.DateLayout),
	}
	if a.PlannedItemID != nil {
		id := *a.PlannedItemID
		response.PlannedItemID = &id
	}
	return response
}

// ToActualItemListResponse converts actual items to response DTOs.
func ToActualItemListResponse(items []*entity.ActualItem) []ActualItemResponse {
	responses := make([]ActualItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToActualItemResponse(item))
	}
	return responses
}

// ToSnapshotResponse converts a FinancialSnapshot to a SnapshotResponse DTO.
func ToSnapshotResponse(s *entity.FinancialSnapshot) SnapshotResponse {
	response := SnapshotResponse{
		Budget:       NewMoney(s.Budget),
		PlannedItems: make([]PlannedItemResponse, 0, len(s.PlannedItems)),
		ActualItems:  make([]ActualItemResponse, 0, len(s.ActualItems)),
	}
	for i := range s.PlannedItems {
		response.PlannedItems = append(response.PlannedItems, ToPlannedItemResponse(&s.PlannedItems[i]))
	}
	for i := range s.ActualItems {
		response.ActualItems = append(response.ActualItems, ToActualItemResponse(&s.ActualItems[i]))
	}
	return response
}
