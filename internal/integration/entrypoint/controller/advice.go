package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartspend/backend/internal/application/usecase/advice"
	domainerror "github.com/smartspend/backend/internal/domain/error"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

// AdviceController handles the spending advice endpoint.
type AdviceController struct {
	getAdviceUseCase *advice.GetAdviceUseCase
}

// NewAdviceController creates a new advice controller instance.
func NewAdviceController(getAdviceUseCase *advice.GetAdviceUseCase) *AdviceController {
	return &AdviceController{
		getAdviceUseCase: getAdviceUseCase,
	}
}

// Generate handles POST /advice requests.
func (c *AdviceController) Generate(ctx *gin.Context) {
	output, err := c.getAdviceUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleAdviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AdviceResponse{
		Advice:      output.Advice,
		GeneratedAt: output.GeneratedAt,
	})
}

// handleAdviceError handles advice errors. Provider failures are 503 so
// clients can tell them apart from ledger errors.
func (c *AdviceController) handleAdviceError(ctx *gin.Context, err error) {
	var adviceErr *domainerror.AdviceError
	if errors.As(err, &adviceErr) {
		ctx.JSON(http.StatusServiceUnavailable, dto.AdviceErrorResponse{
			Error:     adviceErr.Message,
			Code:      string(adviceErr.Code),
			Retryable: adviceErr.Retryable,
		})
		return
	}

	handleLedgerError(ctx, err)
}
