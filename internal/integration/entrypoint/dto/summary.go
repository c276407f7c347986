package dto

import (
	"time"

	"github.com/smartspend/backend/internal/application/usecase/dashboard"
)

// PlannedProgressResponse represents the purchase progress of one planned item.
type PlannedProgressResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	TargetQuantity    int    `json:"targetQuantity"`
	PurchasedQuantity int    `json:"purchasedQuantity"`
	RemainingQuantity int    `json:"remainingQuantity"`
	PlannedTotal      Money  `json:"plannedTotal"`
	IsComplete        bool   `json:"isComplete"`
}

// SummaryResponse represents the budget overview.
type SummaryResponse struct {
	Budget              Money                     `json:"budget"`
	TotalPlanned        Money                     `json:"totalPlanned"`
	TotalActual         Money                     `json:"totalActual"`
	RemainingBudget     Money                     `json:"remainingBudget"`
	IsOverBudget        bool                      `json:"isOverBudget"`
	SpendingProgress    Money                     `json:"spendingProgress"`
	PlannedItemCount    int                       `json:"plannedItemCount"`
	FullyPurchasedCount int                       `json:"fullyPurchasedCount"`
	ActualItemCount     int                       `json:"actualItemCount"`
	Items               []PlannedProgressResponse `json:"items"`
}

// ToSummaryResponse converts the summary output to a response DTO.
func ToSummaryResponse(out *dashboard.GetSummaryOutput) SummaryResponse {
	response := SummaryResponse{
		Budget:              NewMoney(out.Budget),
		TotalPlanned:        NewMoney(out.TotalPlanned),
		TotalActual:         NewMoney(out.TotalActual),
		RemainingBudget:     NewMoney(out.RemainingBudget),
		IsOverBudget:        out.IsOverBudget,
		SpendingProgress:    NewMoney(out.SpendingProgress),
		PlannedItemCount:    out.PlannedItemCount,
		FullyPurchasedCount: out.FullyPurchasedCount,
		ActualItemCount:     out.ActualItemCount,
		Items:               make([]PlannedProgressResponse, 0, len(out.Items)),
	}
	for _, item := range out.Items {
		response.Items = append(response.Items, PlannedProgressResponse{
			ID:                item.ID,
			Name:              item.Name,
			TargetQuantity:    item.TargetQuantity,
			PurchasedQuantity: item.PurchasedQuantity,
			RemainingQuantity: item.RemainingQuantity,
			PlannedTotal:      NewMoney(item.PlannedTotal),
			IsComplete:        item.IsComplete,
		})
	}
	return response
}

// AdviceResponse represents generated spending advice.
type AdviceResponse struct {
	Advice      string    `json:"advice"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// AdviceErrorResponse represents a failed advice request.
type AdviceErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}
