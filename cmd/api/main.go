package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/robsahakyan/mining-pools/internal/config"
	"github.com/robsahakyan/mining-pools/internal/database"
	"github.com/robsahakyan/mining-pools/internal/health"
	"github.com/robsahakyan/mining-pools/internal/metrics"
	"github.com/robsahakyan/mining-pools/internal/miningpool"
	"github.com/robsahakyan/mining-pools/internal/seedlock"
	"github.com/robsahakyan/mining-pools/internal/server"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logrus.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.Server.GinMode)

	// Database connection
	db, err := database.Open(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	checks := map[string]health.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts := []miningpool.Option{miningpool.WithSeedObserver(m)}

	// Redis connection, only used to serialize seeding across replicas
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to Redis")
		}

		locker, err := seedlock.NewRedisLocker(rdb, seedlock.DefaultKey, seedlock.DefaultTTL)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create seed lock")
		}
		opts = append(opts, miningpool.WithSeedLocker(locker))
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	// Mining pool module initialization
	poolRepo := miningpool.NewRepository(db)
	poolService := miningpool.NewService(poolRepo, opts...)

	if err := poolService.EnsureSeeded(context.Background()); err != nil {
		logrus.WithError(err).Fatal("Failed to seed mining pools")
	}

	router := server.NewRouter(server.Deps{
		Service:        poolService,
		Metrics:        m,
		Gatherer:       reg,
		HealthChecks:   checks,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting mining pools API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	database.Close(db)
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Redis")
		}
	}

	logrus.Info("Server exited")
}
