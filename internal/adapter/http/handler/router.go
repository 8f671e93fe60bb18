package handler

import (
	"wallet-service/internal/adapter/http/middleware"
	redisStore "wallet-service/internal/adapter/storage/redis"
	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"
	"wallet-service/pkg/apperror"
	"wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	TokenSvc       ports.TokenService
	AuthDebug      middleware.DebugOptions
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// actionRoles may use the protected /action routes.
var actionRoles = []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleSuperUser}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(middleware.DefaultMaxBodyBytes))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc)

	// --- Public routes ---
	wallet := r.Group("/wallet")
	{
		wallet.GET("/", walletHandler.GetWallet)
		wallet.POST("/create", rl(middleware.GroupWalletCreate), walletHandler.CreateWallet)
	}

	// --- Protected routes ---
	auth := middleware.Pipeline(
		middleware.Authenticate(deps.TokenSvc, deps.AuthDebug, deps.Logger),
		middleware.RequireRoles(actionRoles...),
	)
	action := r.Group("/action", auth, rl(middleware.GroupWalletAction))
	{
		action.PUT("/pin/update", rl(middleware.GroupPinUpdate), walletHandler.UpdatePin)
		action.PUT("/withdraw", walletHandler.Withdraw)
		action.POST("/deposit", walletHandler.Deposit)
	}

	r.GET("/", func(c *gin.Context) {
		response.Error(c, apperror.ErrGenericAuthentication())
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperror.ErrEndpointNotFound())
	})

	return r
}
