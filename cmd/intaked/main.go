package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"complaint-intake-backend/config"
	"complaint-intake-backend/internal/api"
	"complaint-intake-backend/internal/db"
	"complaint-intake-backend/internal/dialog"
	"complaint-intake-backend/internal/events"
	"complaint-intake-backend/internal/notification"
	"complaint-intake-backend/internal/state"
	"complaint-intake-backend/internal/store"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	logger, err := newLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("configuration loaded", zap.String("path", configPath))

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	logger.Info("database initialized")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	// Pick the dialogue state backend
	var states state.Store
	switch cfg.State.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.State.RedisAddr,
			Password: cfg.State.RedisPassword,
			DB:       cfg.State.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		states = state.NewRedisStore(client, cfg.State.KeyPrefix, cfg.State.TTL)
		logger.Info("dialogue state backend: redis", zap.String("addr", cfg.State.RedisAddr))
	case "database":
		states = state.NewGormStore(gormDB)
		logger.Info("dialogue state backend: database")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// Notification worker pool for assigned complaints
	var notifier dialog.Notifier
	if cfg.Push.Enabled {
		if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
			logger.Fatal("VAPID keys must be configured when push is enabled")
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}, logger)
		pool.Start(ctx)
		notifier = pool
		logger.Info("notification worker pool started", zap.Int("size", cfg.WorkerPool.Size))
	}

	// Optional complaint.created publisher
	var publisher dialog.EventPublisher
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Queue)
		if err != nil {
			logger.Fatal("failed to connect to event broker", zap.Error(err))
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("event publisher connected", zap.String("queue", cfg.Events.Queue))
	}

	engine := dialog.NewEngine(appStore, states, notifier, publisher, logger, cfg.Dialog.MaxMessageLen)

	router := api.NewRouter(appStore, engine, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("HTTP server shutdown", zap.Error(err))
	}

	logger.Info("server gracefully stopped")
}

func newLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	if cfg.Format == "console" {
		return zap.NewDevelopment()
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = level
	}
	return zapCfg.Build()
}
