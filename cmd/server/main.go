package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/pprofhandler"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/peopledash/api/handler"
	engine "github.com/fastygo/peopledash/internal/analytics"
	"github.com/fastygo/peopledash/internal/config"
	"github.com/fastygo/peopledash/internal/infrastructure/buffer"
	"github.com/fastygo/peopledash/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/peopledash/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/peopledash/internal/infrastructure/redis"
	"github.com/fastygo/peopledash/internal/middleware"
	"github.com/fastygo/peopledash/internal/ratelimit"
	"github.com/fastygo/peopledash/internal/router"
	"github.com/fastygo/peopledash/internal/services"
	"github.com/fastygo/peopledash/internal/services/lifecycle"
	"github.com/fastygo/peopledash/internal/telemetry"
	"github.com/fastygo/peopledash/pkg/httpcontext"
	"github.com/fastygo/peopledash/pkg/logger"
	"github.com/fastygo/peopledash/repository/postgres"
	redisRepo "github.com/fastygo/peopledash/repository/redis"
	"github.com/fastygo/peopledash/usecase"
	analyticsUC "github.com/fastygo/peopledash/usecase/analytics"
	authUC "github.com/fastygo/peopledash/usecase/auth"
	employeeUC "github.com/fastygo/peopledash/usecase/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ring := logger.NewRing(cfg.Logger.RingSize)
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Ring:     ring,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.JWT.Secret == "" {
		zapLogger.Warn("JWT_SECRET is empty, issued tokens are trivially forgeable")
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, zapLogger)
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	var metrics *telemetry.Metrics
	if cfg.HTTP.EnableMetrics {
		metrics = telemetry.New(cfg.AppName)
	}

	targets := monitor.Targets{
		Postgres: pool.Ping,
		Redis:    redisInfra.Probe(redisClient),
	}

	var bufferStore *buffer.Store
	if cfg.Buffer.Enabled {
		bufferStore, err = buffer.Open(cfg.Buffer.Path, buffer.EntityEmployees, cfg.Buffer.MaxSize)
		if err != nil {
			zapLogger.Fatal("failed to open buffer store", zap.Error(err))
		}
		manager.Register("buffer", func(ctx context.Context) error {
			return bufferStore.Close()
		})
		targets.Buffer = bufferStore
	}

	mon := monitor.New(targets, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	var insertBuffer usecase.InsertBuffer
	if bufferStore != nil {
		bufferProcessor := services.NewBufferProcessor(
			bufferStore,
			mon,
			employeeRepo,
			zapLogger,
			services.ProcessorConfig{
				Interval:   cfg.Buffer.SyncInterval,
				BatchSize:  50,
				MaxRetries: cfg.Buffer.MaxRetry,
				Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
			},
		)
		bufferProcessor.Start()
		manager.Register("buffer_processor", func(ctx context.Context) error {
			bufferProcessor.Stop(ctx)
			return nil
		})
		insertBuffer = services.NewBufferBridge(bufferProcessor)
	}

	var limiter ratelimit.Limiter
	switch cfg.RateLimit.Backend {
	case config.RateLimitRedis:
		limiter = ratelimit.NewRedis(redisClient, cfg.RateLimit.Interval)
	case config.RateLimitNone:
		limiter = ratelimit.Nop{}
	default:
		limiter = ratelimit.NewInterval(cfg.RateLimit.Interval, nil)
	}

	var provider engine.Provider
	if cfg.Analytics.Source == config.AnalyticsLocal {
		provider = engine.NewLocal(employeeRepo, nil)
	} else {
		provider = postgres.NewAnalyticsRepository(pool, nil)
	}
	zapLogger.Info("analytics provider selected",
		zap.String("source", cfg.Analytics.Source),
		zap.String("rate_limit", cfg.RateLimit.Backend))

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	employeeUseCase := employeeUC.New(employeeRepo, limiter, insertBuffer, metrics, zapLogger, employeeUC.Config{
		MinGenerate: cfg.Generator.MinCount,
		MaxGenerate: cfg.Generator.MaxCount,
	})
	analyticsUseCase := analyticsUC.New(provider, limiter, metrics, zapLogger)

	dispatcher := usecase.NewDispatcher()
	analyticsUseCase.Register(dispatcher)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Session.TTL),
		Employee:  apiHandler.NewEmployeeHandler(employeeUseCase, ctxAdapter, zapLogger, cfg.Generator.DefaultCount),
		Analytics: apiHandler.NewAnalyticsHandler(dispatcher, ctxAdapter, zapLogger),
		Logs:      apiHandler.NewLogsHandler(ring, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(authUseCase, cfg.Context.RequestTimeout, zapLogger)
	r := router.New(handlers, authMiddleware, metrics)
	if cfg.HTTP.EnablePprof {
		r.GET("/debug/pprof/{profile:*}", pprofhandler.PprofHandler)
	}

	server := &fasthttp.Server{
		Handler:         r.Handler,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		Concurrency:     cfg.HTTP.MaxConn,
		Name:            cfg.AppName,
		CloseOnShutdown: true,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
