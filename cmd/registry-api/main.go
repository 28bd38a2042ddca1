package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-token-registry/internal/adapter"
	"github.com/feral-file/ff-token-registry/internal/api/middleware"
	"github.com/feral-file/ff-token-registry/internal/api/server"
	"github.com/feral-file/ff-token-registry/internal/config"
	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/emitter"
	"github.com/feral-file/ff-token-registry/internal/engine"
	"github.com/feral-file/ff-token-registry/internal/logger"
	"github.com/feral-file/ff-token-registry/internal/providers/jetstream"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "registry-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Token Registry API")

	// Initialize store
	var dataStore store.Store
	switch cfg.Database.Driver {
	case config.STORE_DRIVER_MEMORY:
		dataStore = store.NewMemoryStore()
		logger.WarnCtx(ctx, "Using the in-memory store, state is lost on restart")
	default:
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to database",
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
			zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		)
		dataStore = store.NewPGStore(db)
	}

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()

	// Names were validated when the config was loaded
	issuingContracts, _ := config.ParseNames(cfg.Registry.IssuingContracts)
	storageMarkets, _ := config.ParseNames(cfg.Registry.StorageMarketAccounts)

	eng, err := engine.New(dataStore, engine.Config{
		RegistryAccount:       domain.Name(cfg.Registry.Account),
		DepositContract:       domain.Name(cfg.Registry.DepositContract),
		IssuingContracts:      issuingContracts,
		StorageMarketAccounts: storageMarkets,
	}, jsonAdapter, adapter.NewJCS(), clockAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create engine", zap.Error(err))
	}

	// Seed the contract whitelist
	if cfg.Registry.WhitelistPath != "" {
		loader := registry.NewWhitelistLoader(fs, jsonAdapter)
		contracts, err := loader.Load(cfg.Registry.WhitelistPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load whitelist",
				zap.Error(err),
				zap.String("path", cfg.Registry.WhitelistPath))
		}
		added, err := eng.SeedWhitelist(ctx, contracts)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to seed whitelist", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Seeded contract whitelist",
			zap.String("path", cfg.Registry.WhitelistPath),
			zap.Int("added", added))
	}

	errCh := make(chan error, 2)

	// Relay committed actions to NATS JetStream
	if cfg.Emitter.Enabled {
		natsPublisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			MaxAge:         cfg.NATS.MaxAge,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer natsPublisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS JetStream")

		actionEmitter := emitter.NewEmitter(natsPublisher, dataStore, emitter.Config{
			Name:              cfg.NATS.StreamName,
			StartCursor:       cfg.Emitter.StartCursor,
			BatchSize:         cfg.Emitter.BatchSize,
			WorkerPoolSize:    cfg.Emitter.WorkerPoolSize,
			PollInterval:      cfg.Emitter.PollInterval,
			MaxPublishElapsed: cfg.Emitter.MaxPublishTime,
		}, clockAdapter)
		defer actionEmitter.Close()

		go func() {
			if err := actionEmitter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("emitter stopped: %w", err)
			}
		}()
	}

	// Create server config
	serverConfig := server.Config{
		Debug:              cfg.Debug,
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:       time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:        time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, eng)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "registry-api"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since ctx is canceled
	logger.Info("Registry API server stopped")
}
