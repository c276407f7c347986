// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartspend/backend/internal/integration/entrypoint/controller"
	"github.com/smartspend/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	budgetController      *controller.BudgetController
	plannedItemController *controller.PlannedItemController
	actualItemController  *controller.ActualItemController
	dashboardController   *controller.DashboardController
	adviceController      *controller.AdviceController
	rateLimiter           *middleware.RateLimiter
	httpMetrics           *middleware.HTTPMetrics
	gatherer              prometheus.Gatherer
}

// NewRouter creates a new router instance with all dependencies.
// httpMetrics and gatherer may be nil, in which case /metrics is not served.
func NewRouter(
	healthController *controller.HealthController,
	budgetController *controller.BudgetController,
	plannedItemController *controller.PlannedItemController,
	actualItemController *controller.ActualItemController,
	dashboardController *controller.DashboardController,
	adviceController *controller.AdviceController,
	rateLimiter *middleware.RateLimiter,
	httpMetrics *middleware.HTTPMetrics,
	gatherer prometheus.Gatherer,
) *Router {
	return &Router{
		healthController:      healthController,
		budgetController:      budgetController,
		plannedItemController: plannedItemController,
		actualItemController:  actualItemController,
		dashboardController:   dashboardController,
		adviceController:      adviceController,
		rateLimiter:           rateLimiter,
		httpMetrics:           httpMetrics,
		gatherer:              gatherer,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	if r.httpMetrics != nil {
		r.engine.Use(r.httpMetrics.Middleware())
	}

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.gatherer != nil {
		r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}
}

// setupAPIRoutes configures the ledger API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}
	{
		budget := v1.Group("/budget")
		{
			budget.GET("", r.budgetController.Get)
			budget.POST("", r.budgetController.Update)
		}

		plannedItems := v1.Group("/planned-items")
		{
			plannedItems.GET("", r.plannedItemController.List)
			plannedItems.POST("", r.plannedItemController.Create)
			plannedItems.PUT("/:id", r.plannedItemController.Update)
			plannedItems.DELETE("/:id", r.plannedItemController.Delete)
			plannedItems.POST("/:id/purchase", r.plannedItemController.MarkPurchased)
		}

		actualItems := v1.Group("/actual-items")
		{
			actualItems.GET("", r.actualItemController.List)
			actualItems.POST("", r.actualItemController.Create)
			actualItems.PUT("/:id", r.actualItemController.Update)
			actualItems.DELETE("/:id", r.actualItemController.Delete)
		}

		v1.GET("/snapshot", r.dashboardController.GetSnapshot)
		v1.GET("/dashboard", r.dashboardController.GetSummary)

		if r.adviceController != nil {
			v1.POST("/advice", r.adviceController.Generate)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
