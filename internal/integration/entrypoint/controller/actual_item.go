package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartspend/backend/internal/application/usecase/actualitem"
	"github.com/smartspend/backend/internal/domain/entity"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

// ActualItemController handles actual item endpoints.
type ActualItemController struct {
	listUseCase   *actualitem.ListActualItemsUseCase
	createUseCase *actualitem.CreateActualItemUseCase
	updateUseCase *actualitem.UpdateActualItemUseCase
	deleteUseCase *actualitem.DeleteActualItemUseCase
}

// NewActualItemController creates a new actual item controller instance.
func NewActualItemController(
	listUseCase *actualitem.ListActualItemsUseCase,
	createUseCase *actualitem.CreateActualItemUseCase,
	updateUseCase *actualitem.UpdateActualItemUseCase,
	deleteUseCase *actualitem.DeleteActualItemUseCase,
) *ActualItemController {
	return &ActualItemController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /actual-items requests.
func (c *ActualItemController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToActualItemListResponse(output.Items))
}

// Create handles POST /actual-items requests.
func (c *ActualItemController) Create(ctx *gin.Context) {
	var req dto.ActualItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), actualitem.CreateActualItemInput{
		ID:            req.ID,
		Name:          req.Name,
		Quantity:      *req.Quantity,
		TotalCost:     req.TotalCost.Decimal,
		Date:          date,
		PlannedItemID: linkedID(req.PlannedItemID),
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToActualItemResponse(output.Item))
}

// Update handles PUT /actual-items/:id requests.
func (c *ActualItemController) Update(ctx *gin.Context) {
	var req dto.ActualItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), actualitem.UpdateActualItemInput{
		ID:            ctx.Param("id"),
		Name:          req.Name,
		Quantity:      *req.Quantity,
		TotalCost:     req.TotalCost.Decimal,
		Date:          date,
		PlannedItemID: linkedID(req.PlannedItemID),
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToActualItemResponse(output.Item))
}

// Delete handles DELETE /actual-items/:id requests.
func (c *ActualItemController) Delete(ctx *gin.Context) {
	if err := c.deleteUseCase.Execute(ctx.Request.Context(), ctx.Param("id")); err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func linkedID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
