package handler

import (
	"time"

	"wallet-ledger/internal/adapter/http/middleware"
	redisStore "wallet-ledger/internal/adapter/storage/redis"
	"wallet-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc          ports.AuthService
	WalletSvc        ports.WalletService
	TokenSvc         ports.TokenService
	AuditSvc         ports.AuditService         // nil = audit logging disabled
	RateLimitStore   *redisStore.RateLimitStore // nil = rate limiting disabled
	IdempotencyStore ports.IdempotencyStore     // nil = Idempotency-Key ignored
	IdempotencyTTL   time.Duration
	HealthCheckers   []ports.HealthChecker
	CORSOrigins      []string
	RequestTimeout   time.Duration
	Logger           zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.MaxBodySize(maxBodyBytes))
	r.Use(middleware.RequestTimeout(deps.RequestTimeout))

	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	noop := func(c *gin.Context) { c.Next() }

	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return noop
		}
		rule, ok := rules[group]
		if !ok {
			return noop
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	idempotent := noop
	if deps.IdempotencyStore != nil {
		ttl := deps.IdempotencyTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		idempotent = middleware.Idempotency(deps.IdempotencyStore, ttl, deps.Logger)
	}

	api := r.Group("/api")

	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := api.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc)
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	// History stays public.
	api.GET("/wallets/:id/transactions", rl("history"), walletHandler.Transactions)

	wallets := api.Group("/wallets", jwtAuth)
	{
		wallets.GET("", rl("wallets_read"), walletHandler.List)
		wallets.GET("/:id", rl("wallets_read"), walletHandler.Get)
		wallets.POST("", rl("wallets_write"), walletHandler.Create)
		wallets.PUT("/:id", rl("wallets_write"), walletHandler.Update)
		wallets.DELETE("/:id", rl("wallets_write"), walletHandler.Delete)
		wallets.POST("/transfer", rl("transfer"), idempotent, walletHandler.Transfer)
	}

	return r
}
