package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartspend/backend/internal/application/usecase/dashboard"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles whole-ledger read endpoints.
type DashboardController struct {
	getSnapshotUseCase *dashboard.GetSnapshotUseCase
	getSummaryUseCase  *dashboard.GetSummaryUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getSnapshotUseCase *dashboard.GetSnapshotUseCase, getSummaryUseCase *dashboard.GetSummaryUseCase) *DashboardController {
	return &DashboardController{
		getSnapshotUseCase: getSnapshotUseCase,
		getSummaryUseCase:  getSummaryUseCase,
	}
}

// GetSnapshot handles GET /snapshot requests.
func (c *DashboardController) GetSnapshot(ctx *gin.Context) {
	output, err := c.getSnapshotUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSnapshotResponse(output.Snapshot))
}

// GetSummary handles GET /dashboard requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}
