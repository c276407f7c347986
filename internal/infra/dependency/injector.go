// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/smartspend/backend/config"
	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/application/usecase/actualitem"
	"github.com/smartspend/backend/internal/application/usecase/advice"
	"github.com/smartspend/backend/internal/application/usecase/budget"
	"github.com/smartspend/backend/internal/application/usecase/dashboard"
	"github.com/smartspend/backend/internal/application/usecase/planneditem"
	"github.com/smartspend/backend/internal/infra/server/router"
	"github.com/smartspend/backend/internal/integration/adapters"
	"github.com/smartspend/backend/internal/integration/cache"
	"github.com/smartspend/backend/internal/integration/entrypoint/controller"
	"github.com/smartspend/backend/internal/integration/entrypoint/middleware"
	"github.com/smartspend/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Repository  adapter.LedgerRepository
	Registry    *prometheus.Registry
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient is nil when the cache is kept in process memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Create repositories
	ttls := cache.TTLs{
		adapter.CacheKeyBudget:       cfg.Cache.BudgetTTL,
		adapter.CacheKeyPlannedItems: cfg.Cache.PlannedItemsTTL,
		adapter.CacheKeyActualItems:  cfg.Cache.ActualItemsTTL,
	}
	var ledgerCache adapter.Cache
	if redisClient != nil {
		ledgerCache = cache.NewRedisCache(redisClient, cfg.Redis.KeyPrefix, ttls)
	} else {
		ledgerCache = cache.NewMemoryCache(ttls)
	}
	ledgerRepo := cache.NewCachedLedgerRepository(
		persistence.NewLedgerRepository(db),
		ledgerCache,
		cache.NewMetrics(registry),
	)

	// Create adapters/services
	idGenerator := adapters.UUIDGenerator{}
	advisor := adapters.NewGeminiAdvisor(cfg.Gemini.APIKey, cfg.Gemini.Model)

	// Create budget use cases
	getBudgetUseCase := budget.NewGetBudgetUseCase(ledgerRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(ledgerRepo)

	// Create planned item use cases
	listPlannedItemsUseCase := planneditem.NewListPlannedItemsUseCase(ledgerRepo)
	createPlannedItemUseCase := planneditem.NewCreatePlannedItemUseCase(ledgerRepo, idGenerator)
	updatePlannedItemUseCase := planneditem.NewUpdatePlannedItemUseCase(ledgerRepo)
	deletePlannedItemUseCase := planneditem.NewDeletePlannedItemUseCase(ledgerRepo)

	// Create actual item use cases
	listActualItemsUseCase := actualitem.NewListActualItemsUseCase(ledgerRepo)
	createActualItemUseCase := actualitem.NewCreateActualItemUseCase(ledgerRepo, idGenerator)
	updateActualItemUseCase := actualitem.NewUpdateActualItemUseCase(ledgerRepo)
	deleteActualItemUseCase := actualitem.NewDeleteActualItemUseCase(ledgerRepo)
	markPurchasedUseCase := actualitem.NewMarkPurchasedUseCase(ledgerRepo, createActualItemUseCase)

	// Create dashboard and advice use cases
	getSnapshotUseCase := dashboard.NewGetSnapshotUseCase(ledgerRepo)
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(ledgerRepo)
	getAdviceUseCase := advice.NewGetAdviceUseCase(ledgerRepo, advisor, cfg.Gemini.Timeout)

	// Create controllers
	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	budgetController := controller.NewBudgetController(getBudgetUseCase, updateBudgetUseCase)

	plannedItemController := controller.NewPlannedItemController(
		listPlannedItemsUseCase,
		createPlannedItemUseCase,
		updatePlannedItemUseCase,
		deletePlannedItemUseCase,
		markPurchasedUseCase,
	)

	actualItemController := controller.NewActualItemController(
		listActualItemsUseCase,
		createActualItemUseCase,
		updateActualItemUseCase,
		deleteActualItemUseCase,
	)

	dashboardController := controller.NewDashboardController(getSnapshotUseCase, getSummaryUseCase)
	adviceController := controller.NewAdviceController(getAdviceUseCase)

	// Create middleware
	// Rate limiting is disabled in test and E2E mode to prevent flaky tests
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window, cfg.IsTest())
	httpMetrics := middleware.NewHTTPMetrics(registry)

	// Create router
	r := router.NewRouter(
		healthController,
		budgetController,
		plannedItemController,
		actualItemController,
		dashboardController,
		adviceController,
		rateLimiter,
		httpMetrics,
		registry,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Repository:  ledgerRepo,
		Registry:    registry,
		RateLimiter: rateLimiter,
		Router:      r,
	}
}
