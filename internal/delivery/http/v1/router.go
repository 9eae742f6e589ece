package v1

import (
	"net/http"
	"time"

	"go-interview-booking/config"
	"go-interview-booking/internal/delivery/http/middleware"
	"go-interview-booking/internal/delivery/http/response"
	"go-interview-booking/internal/domain"
	"go-interview-booking/internal/usecase"
	"go-interview-booking/pkg/auth"
	"go-interview-booking/pkg/metrics"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	CompanyUC   domain.CompanyUsecase
	PositionUC  domain.PositionUsecase
	InterviewUC domain.InterviewUsecase
	HealthUC    usecase.HealthUsecase
	Verifier    *auth.Verifier
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	// Gatherer backs /metrics; nil leaves the route out
	Gatherer prometheus.Gatherer
	// Redis backs the rate limiter; nil selects the in-memory buckets
	Redis *goredis.Client
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(ginzap.Ginzap(deps.Logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(deps.Logger, true))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(deps.Logger))

	healthHandler := newHealthHandler(deps.HealthUC)
	r.GET("/health", healthHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	limiter := middleware.NewRateLimiter(
		middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, time.Duration(cfg.RateLimitWindowSeconds)*time.Second),
		deps.Redis,
		deps.Logger.Named("ratelimit"),
	)

	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())
	api.Use(middleware.Timeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second))
	api.Use(middleware.ConcurrencyLimit(int64(cfg.MaxConcurrentRequests)))

	api.GET("/health", healthHandler)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.AuthUC, deps.Logger.Named("auth")))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewCompanyHandler(api, protected, deps.CompanyUC)
		NewPositionHandler(api, protected, deps.PositionUC)
		NewInterviewHandler(protected, deps.InterviewUC)
	}

	return r
}

// HealthCheck godoc
// @Summary      Health check
// @Description  Probes the store and Redis when they are configured
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func newHealthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if healthUC == nil {
			response.Message(c, http.StatusOK, "System operational")
			return
		}

		status, ok := healthUC.Check(c.Request.Context())
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, response.Response{Success: ok, Data: status, RequestID: c.GetString(middleware.KeyRequestID)})
	}
}
