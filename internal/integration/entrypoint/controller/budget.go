package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartspend/backend/internal/application/usecase/budget"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	getUseCase    *budget.GetBudgetUseCase
	updateUseCase *budget.UpdateBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(getUseCase *budget.GetBudgetUseCase, updateUseCase *budget.UpdateBudgetUseCase) *BudgetController {
	return &BudgetController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /budget requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponse{Amount: dto.NewMoney(output.Budget.Amount)})
}

// Update handles POST /budget requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), budget.UpdateBudgetInput{
		Amount: req.Amount.Decimal,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponse{Amount: dto.NewMoney(output.Budget.Amount)})
}
