package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartspend/backend/internal/application/usecase/actualitem"
	"github.com/smartspend/backend/internal/application/usecase/planneditem"
	"github.com/smartspend/backend/internal/domain/entity"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

// PlannedItemController handles planned item endpoints.
type PlannedItemController struct {
	listUseCase          *planneditem.ListPlannedItemsUseCase
	createUseCase        *planneditem.CreatePlannedItemUseCase
	updateUseCase        *planneditem.UpdatePlannedItemUseCase
	deleteUseCase        *planneditem.DeletePlannedItemUseCase
	markPurchasedUseCase *actualitem.MarkPurchasedUseCase
}

// NewPlannedItemController creates a new planned item controller instance.
func NewPlannedItemController(
	listUseCase *planneditem.ListPlannedItemsUseCase,
	createUseCase *planneditem.CreatePlannedItemUseCase,
	updateUseCase *planneditem.UpdatePlannedItemUseCase,
	deleteUseCase *planneditem.DeletePlannedItemUseCase,
	markPurchasedUseCase *actualitem.MarkPurchasedUseCase,
) *PlannedItemController {
	return &PlannedItemController{
		listUseCase:          listUseCase,
		createUseCase:        createUseCase,
		updateUseCase:        updateUseCase,
		deleteUseCase:        deleteUseCase,
		markPurchasedUseCase: markPurchasedUseCase,
	}
}

// List handles GET /planned-items requests.
func (c *PlannedItemController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlannedItemListResponse(output.Items))
}

// Create handles POST /planned-items requests.
func (c *PlannedItemController) Create(ctx *gin.Context) {
	var req dto.PlannedItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), planneditem.CreatePlannedItemInput{
		ID:                req.ID,
		Name:              req.Name,
		TargetQuantity:    *req.TargetQuantity,
		PricePerUnit:      req.PricePerUnit.Decimal,
		PurchasedQuantity: req.PurchasedQuantity,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPlannedItemResponse(output.Item))
}

// Update handles PUT /planned-items/:id requests.
func (c *PlannedItemController) Update(ctx *gin.Context) {
	var req dto.PlannedItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), planneditem.UpdatePlannedItemInput{
		ID:                ctx.Param("id"),
		Name:              req.Name,
		TargetQuantity:    *req.TargetQuantity,
		PricePerUnit:      req.PricePerUnit.Decimal,
		PurchasedQuantity: req.PurchasedQuantity,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlannedItemResponse(output.Item))
}

// Delete handles DELETE /planned-items/:id requests.
func (c *PlannedItemController) Delete(ctx *gin.Context) {
	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeletePlannedItemResponse{DetachedActualItems: output.DetachedActualItems})
}

// MarkPurchased handles POST /planned-items/:id/purchase requests.
func (c *PlannedItemController) MarkPurchased(ctx *gin.Context) {
	var req dto.MarkPurchasedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	output, err := c.markPurchasedUseCase.Execute(ctx.Request.Context(), actualitem.MarkPurchasedInput{
		ID:            req.ID,
		PlannedItemID: ctx.Param("id"),
		Quantity:      *req.Quantity,
		TotalCost:     req.TotalCost.Decimal,
		Date:          date,
		Name:          req.Name,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToActualItemResponse(output.Item))
}
