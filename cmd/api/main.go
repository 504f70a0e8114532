package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/supplier-import/internal/application/imports"
	"github.com/mohammadpnp/supplier-import/internal/bootstrap"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/lock"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/logging"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/notify"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/repository"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config{Level: cfg.LogLevel, Component: "supplier-import"})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	if err := repository.Migrate(ctx, db); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("create pgx pool", zap.Error(err))
	}
	defer pool.Close()

	var locker app.Locker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("connect redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		locker = lock.NewRedisLocker(rdb, cfg.ImportLockTTL, logger)
	} else {
		logger.Warn("REDIS_ADDR not set, import locks are local to this process")
		locker = lock.NewLocalLocker()
	}

	var dispatcher app.InvitationDispatcher
	if cfg.KafkaEnabled() {
		kafkaDispatcher := notify.NewKafkaDispatcher(notify.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaInvitationTopic,
		}, logger)
		defer func() {
			if err := kafkaDispatcher.Close(); err != nil {
				logger.Warn("close kafka writer", zap.Error(err))
			}
		}()
		dispatcher = kafkaDispatcher
	} else {
		dispatcher = notify.NewLogDispatcher(logger)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := bootstrap.NewHTTPServer(cfg, bootstrap.Dependencies{
		DB:         db,
		Pool:       pool,
		Locker:     locker,
		Dispatcher: dispatcher,
		Registry:   registry,
		Logger:     logger,
	})

	go func() {
		logger.Info("http server listening", zap.String("port", cfg.Port))
		if err := server.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("http server stopped")
}
