package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/revoparts/pkg/auth"
	"github.com/example/revoparts/pkg/config"
	"github.com/example/revoparts/pkg/discovery"
	"github.com/example/revoparts/pkg/payments"
	"github.com/example/revoparts/pkg/repository"
	"github.com/example/revoparts/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := buildLogger(&cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting storefront API",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// Storage
	mongoRepo, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongoRepo.Ping(ctx); err != nil {
		cancel()
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	if err := mongoRepo.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancel()

	redisRepo := repository.NewRedisRepository(&cfg.Redis)
	if err := redisRepo.Ping(context.Background()); err != nil {
		logger.Warn("Redis connection failed, role lookups will hit MongoDB", zap.Error(err))
	} else {
		logger.Info("Redis connected successfully")
	}

	// Service registration
	instance := &discovery.Instance{
		Name: cfg.Server.Name,
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}
	registry, err := discovery.NewRegistry(&cfg.Etcd)
	if err != nil {
		logger.Warn("Failed to connect to etcd, continuing without registration", zap.Error(err))
		registry = nil
	} else if err := registry.Register(context.Background(), instance); err != nil {
		logger.Warn("Failed to register service", zap.Error(err))
	}

	// Wire the server
	tokens := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	bridge := payments.NewBridge(cfg.Stripe.Key)

	srv := server.NewServer(cfg, logger, mongoRepo, redisRepo, bridge, tokens)
	srv.SetupRoutes()

	// Start server in goroutine
	srvErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			srvErr <- err
		}
	}()

	logger.Info("API started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-srvErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if registry != nil {
		if err := registry.Deregister(shutdownCtx, instance); err != nil {
			logger.Error("Failed to deregister service", zap.Error(err))
		}
		registry.Close()
	}

	redisRepo.Close()
	if err := mongoRepo.Close(shutdownCtx); err != nil {
		logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("API stopped")
}

func buildLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}
	return zc.Build()
}
