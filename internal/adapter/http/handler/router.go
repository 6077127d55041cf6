package handler

import (
	"wallet-ledger/internal/adapter/http/middleware"
	"wallet-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Commands       ports.WalletCommandService
	Queries        ports.WalletQueryService
	Projection     ports.ProjectionService // nil = projector not running in this process
	TokenSvc       ports.TokenService
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Operational endpoints
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Projection != nil {
		r.GET("/health/projection", ProjectionHealth(deps.Projection))
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1", jwtAuth)

	// --- Commands ---
	walletHandler := NewWalletHandler(deps.Commands)
	commands := v1.Group("", middleware.RequireJSON())
	{
		commands.POST("/wallets", rl("commands"), walletHandler.Create)
		commands.POST("/wallets/:id/activate", rl("commands"), walletHandler.Activate)
		commands.POST("/wallets/:id/suspend", rl("commands"), walletHandler.Suspend)
		commands.POST("/wallets/:id/close", rl("commands"), walletHandler.Close)
		commands.POST("/wallets/:id/credit", rl("commands"), walletHandler.Credit)
		commands.POST("/wallets/:id/debit", rl("commands"), walletHandler.Debit)
		commands.POST("/transfers", rl("transfers"), walletHandler.Transfer)
	}

	// --- Queries ---
	queryHandler := NewQueryHandler(deps.Queries)
	{
		v1.GET("/wallets/:id", rl("queries"), queryHandler.GetWallet)
		v1.GET("/wallets/:id/events", rl("queries"), queryHandler.ListEvents)
		v1.GET("/totals/:kind/:id", rl("queries"), queryHandler.GetPeriodTotals)
	}

	return r
}
