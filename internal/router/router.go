package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/thatman123-source/cash-reconciliation/internal/config"
	"github.com/thatman123-source/cash-reconciliation/internal/handler"
	"github.com/thatman123-source/cash-reconciliation/internal/middleware"
	"github.com/thatman123-source/cash-reconciliation/internal/repository"
	"github.com/thatman123-source/cash-reconciliation/internal/service"
	"github.com/thatman123-source/cash-reconciliation/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	entryRepo := repository.NewEntryRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	ledgerSvc := service.NewLedgerService(entryRepo, withdrawalRepo, dispatcher, cfg.NotifyEmail)

	// ── Handlers ─────────────────────────────────────────────────────────────
	entriesH := handler.NewEntriesHandler(ledgerSvc)
	withdrawalsH := handler.NewWithdrawalsHandler(ledgerSvc)
	reportsH := handler.NewReportsHandler(ledgerSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		entries := v1.Group("/entries")
		{
			entries.GET("", entriesH.List)
			entries.POST("", entriesH.Create)
			entries.PUT("/:id", entriesH.Update)
			entries.DELETE("/:id", entriesH.Delete)
			entries.POST("/:id/approve", entriesH.Approve)
		}

		v1.GET("/totals", entriesH.Totals)

		withdrawals := v1.Group("/withdrawals")
		{
			withdrawals.GET("", withdrawalsH.List)
			withdrawals.POST("", withdrawalsH.Create)
		}

		v1.GET("/reports/daily", reportsH.Daily)
	}

	// Swagger UI is only mounted outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
