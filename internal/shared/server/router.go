package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Rate limit bucket names.
const (
	BucketDefault = "default"
	BucketModel   = "model"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything NewRouter wires.
type RouterDeps struct {
	Config   config.Config
	Verifier *auth.Verifier
	Health   *health.Service
	Handlers []RouteRegistrar
	Limiter  *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging("/metrics"),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(deps.Config.LLMProvider, nil)
	}
	r.GET("/api/v1/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status(c.Request.Context()))
	})

	api := r.Group("/api/v1")
	api.Use(
		middleware.Auth(deps.Verifier),
		middleware.RateLimit(deps.Limiter, middleware.RateLimitPolicy{
			Buckets:  rateLimitBuckets(deps.Config),
			Classify: classifyRequest,
		}),
	)
	registerMeRoutes(api)
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

// rateLimitBuckets derives both buckets from the configured model rate.
// Ordinary routes get ten times the rate and four times the burst.
func rateLimitBuckets(cfg config.Config) map[string]middleware.Bucket {
	rps := cfg.RateLimitRPS
	burst := cfg.RateLimitBurst
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return map[string]middleware.Bucket{
		BucketModel:   {PerSecond: rps, Burst: burst},
		BucketDefault: {PerSecond: rps * 10, Burst: burst * 4},
	}
}

var modelRoutes = map[string]bool{
	"/resumes/generate": true,
	"/resumes/optimize": true,
	"/resumes/tailor":   true,
	"/resumes/review":   true,
}

func classifyRequest(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && modelRoutes[strings.TrimPrefix(c.FullPath(), "/api/v1")] {
		return BucketModel
	}
	return BucketDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
