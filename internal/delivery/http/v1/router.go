package v1

import (
	"portfolio-api/config"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/domain"
	"portfolio-api/internal/usecase"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	FitUC     domain.FitUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
	SecLog    *security.SecurityLogger
	// RateLimitStore overrides the Redis client used for rate limiting (tests).
	RateLimitStore func() *goredis.Client
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxFitBodyBytes
	trustClientIP(r, deps.Config)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(response.Error, deps.SecLog))
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)

	contactLimit := middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, deps.Config.RateLimitWindow())
	contactLimit.Store = deps.RateLimitStore
	contactLimit.SecLog = deps.SecLog
	NewContactHandler(api, deps.ContactUC, deps.SecLog, middleware.RateLimitMiddleware(contactLimit))

	fitLimit := middleware.FitRateLimitConfig(deps.Config.RateLimitFitThreshold, deps.Config.RateLimitWindow())
	fitLimit.Store = deps.RateLimitStore
	fitLimit.SecLog = deps.SecLog
	NewFitHandler(api, deps.FitUC, deps.SecLog, middleware.RateLimitMiddleware(fitLimit))

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// trustClientIP decides what c.ClientIP reports. Unconfigured, it is the TCP peer and
// forwarding headers are ignored.
func trustClientIP(r *gin.Engine, cfg *config.Config) {
	switch cfg.TrustedPlatform {
	case "cloudflare":
		r.TrustedPlatform = gin.PlatformCloudflare
	case "google":
		r.TrustedPlatform = gin.PlatformGoogleAppEngine
	}
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Log.Warn("invalid TRUSTED_PROXIES, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
}

// requestMeta collects the caller details usecases log and verify with.
func requestMeta(c *gin.Context) domain.RequestMeta {
	return domain.RequestMeta{
		RequestID: c.GetString(middleware.RequestIDKey),
		ClientIP:  c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}
