package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-interview-booking/config"
	_ "go-interview-booking/docs" // Important for Swagger
	v1 "go-interview-booking/internal/delivery/http/v1"
	"go-interview-booking/internal/domain"
	"go-interview-booking/internal/repository/memory"
	"go-interview-booking/internal/repository/postgres"
	"go-interview-booking/internal/usecase"
	"go-interview-booking/pkg/auth"
	"go-interview-booking/pkg/database"
	"go-interview-booking/pkg/events"
	"go-interview-booking/pkg/logger"
	"go-interview-booking/pkg/metrics"
	"go-interview-booking/pkg/redis"
	"go-interview-booking/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

// @title           Interview Booking API
// @version         1.0
// @description     Companies publish positions with an interview window; users book interviews inside it.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	l, syncLogger := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		JSON:       cfg.LogJSON,
		File:       cfg.LogFile,
		MaxSizeMB:  100,
		MaxBackups: 7,
		MaxAgeDays: 30,
	})
	defer syncLogger()
	l.Info("Starting interview booking API", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))

	ctx := context.Background()

	// 3. Setup Store
	store, pinger, closeStore, err := openStore(ctx, cfg, l)
	if err != nil {
		l.Error("Failed to open store", zap.Error(err))
		syncLogger()
		os.Exit(1)
	}
	defer closeStore()

	probes := map[string]usecase.Pinger{}
	if pinger != nil {
		probes["database"] = pinger
	}

	// 4. Optional infrastructure
	redisClient := openRedis(ctx, cfg, l)
	if redisClient != nil {
		defer redisClient.Close()
		probes["redis"] = usecase.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, l.Named("events"))
		l.Info("Publishing interview events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 5. Setup UseCases
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(store, l)
	companyUC := usecase.NewCompanyUsecase(store, validate, l, m)
	positionUC := usecase.NewPositionUsecase(store, validate, l, m)
	interviewUC := usecase.NewInterviewUsecase(store, validate, l, m, publisher, cfg.InterviewQuota)
	healthUC := usecase.NewHealthUsecase(probes)

	// 6. Setup Router
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		PositionUC:  positionUC,
		InterviewUC: interviewUC,
		HealthUC:    healthUC,
		Verifier:    auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		Config:      cfg,
		Logger:      l,
		Metrics:     m,
		Gatherer:    reg,
		Redis:       redisClient,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("Server forced to shutdown", zap.Error(err))
	}

	l.Info("Server exiting")
}

// openStore selects the entity store. The returned Pinger is nil for the
// memory store and the returned func releases the store.
func openStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (domain.Store, usecase.Pinger, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		l.Warn("Using the in-memory store, data is lost on restart")
		return memory.New(), nil, func() {}, nil

	case "postgres":
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, cfg.DBConnectRetries, l)
		if err != nil {
			return nil, nil, nil, err
		}
		store := postgres.NewStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return store, pool, pool.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// openRedis returns nil when Redis is not configured or unreachable
func openRedis(ctx context.Context, cfg *config.Config, l *zap.Logger) *goredis.Client {
	client, err := redis.New(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if errors.Is(err, redis.ErrNotConfigured) {
		return nil
	}
	if err != nil {
		l.Warn("Redis unavailable, rate limiting uses in-memory buckets", zap.Error(err))
		return nil
	}
	l.Info("Connected to Redis")
	return client
}
