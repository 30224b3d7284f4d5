package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/clock"
	"github.com/iliyamo/vessel-management/internal/config"
	"github.com/iliyamo/vessel-management/internal/database"
	"github.com/iliyamo/vessel-management/internal/handler"
	"github.com/iliyamo/vessel-management/internal/logging"
	"github.com/iliyamo/vessel-management/internal/middleware"
	"github.com/iliyamo/vessel-management/internal/queue"
	"github.com/iliyamo/vessel-management/internal/repository"
	"github.com/iliyamo/vessel-management/internal/router"
	"github.com/iliyamo/vessel-management/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "vms-api")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional: without it the dashboard is not cached and /auth
	// is not rate limited.
	var rdb *redis.Client
	if rc, err := config.NewRedisClient(ctx, config.LoadRedisConfig()); err != nil {
		logger.Warn("redis unavailable, cache and rate limit disabled", zap.Error(err))
	} else {
		rdb = rc
		defer rdb.Close()
	}

	var publisher service.Publisher = service.NopPublisher{}
	if cfg.QueueEnabled {
		publisher = service.NewAMQPPublisher(cfg.AMQPURL, logger)
		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.ComplianceLogDir, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("compliance consumer stopped", zap.Error(err))
			}
		}()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	certs := repository.NewCertificateRepo(db)
	clk := clock.NewSystemClock()

	if cfg.CertSweepEnabled {
		sweep := &service.ExpirySweep{Certs: certs, Publisher: publisher, Clock: clk, Log: logger}
		c, err := sweep.Schedule(cfg.CertSweepSchedule)
		if err != nil {
			logger.Fatal("schedule certificate sweep", zap.Error(err))
		}
		c.Start()
		defer c.Stop()
	}

	e := echo.New()
	router.Setup(e, logger, cfg.CORSOrigins)
	router.RegisterRoutes(e)
	router.RegisterAuth(e,
		handler.NewAuthHandler(cfg, users, tokens, logger),
		cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger))
	router.RegisterProfile(e, &handler.ProfileHandler{
		Profiles:   repository.NewProfileRepo(db),
		Kin:        repository.NewNextOfKinRepo(db),
		Medical:    repository.NewMedicalRepo(db),
		Certs:      certs,
		Signatures: repository.NewSignatureRepo(db),
		Publisher:  publisher,
		Clock:      clk,
		Log:        logger,
	}, cfg.JWTSecret)
	cacheCfg := config.LoadCacheConfig()
	router.RegisterFleet(e, &handler.FleetHandler{
		Vessels:     repository.NewVesselRepo(db),
		Maintenance: repository.NewMaintenanceRepo(db),
		Safety:      repository.NewSafetyRepo(db),
		Crew:        repository.NewCrewRepo(db),
		Log:         logger,
	}, cfg.JWTSecret,
		middleware.NewRedisCache(cacheCfg, rdb, logger),
		middleware.NewCacheInvalidator(cacheCfg, rdb, logger))

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
