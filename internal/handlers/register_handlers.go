package handlers

import (
	"log/slog"

	"github.com/parceldesk/ledger_core_app/cmd/docs"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/middleware"
	"github.com/parceldesk/ledger_core_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators wires the "ledgerdate" binding tag so DTO date
// fields are rejected before they reach the services.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		slog.Warn("Could not access gin validator engine, ledgerdate validation disabled")
		return
	}
	_ = v.RegisterValidation("ledgerdate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// All API traffic is authenticated and rate limited per client IP
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		slog.Warn("Invalid RATE_LIMIT value, falling back to default", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted(config.DefaultRateLimit)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter), middleware.AuthMiddleware(cfg.JWTSecret))

	registerCurrencyRoutes(v1, services.Currency)

	// Everything ledger-scoped lives under a branch
	branch := v1.Group("/branches/:branchID")
	{
		registerAccountRoutes(branch, services.Account, services.Journal)
		registerJournalRoutes(branch, services.Journal)
		registerPeriodRoutes(branch, services.PeriodLock, services.Audit, services.Closing)
		registerAuditRoutes(branch, services.Audit)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
