package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nulzo/prompt-router/internal/analytics"
	"github.com/nulzo/prompt-router/internal/cli"
	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/dispatch"
	"github.com/nulzo/prompt-router/internal/gateway"
	"github.com/nulzo/prompt-router/internal/override"
	"github.com/nulzo/prompt-router/internal/platform/logger"
	"github.com/nulzo/prompt-router/internal/platform/otel"
	"github.com/nulzo/prompt-router/internal/server"
	"github.com/nulzo/prompt-router/internal/store/cache"
	"github.com/nulzo/prompt-router/internal/store/sqlite"
	"github.com/nulzo/prompt-router/internal/version"
	"go.uber.org/zap"

	// response strategies register themselves with the llm factory
	_ "github.com/nulzo/prompt-router/internal/llm/anthropic"
	_ "github.com/nulzo/prompt-router/internal/llm/gemini"
	_ "github.com/nulzo/prompt-router/internal/llm/openai"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	cli.SetEnabled(cfg.Log.Color)
	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Color,
	})
	log := logger.Get()
	defer logger.Sync()

	if cfg.Log.Format == "console" {
		fmt.Print(cli.Banner(version.AppVersion))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	shutdownTracer := otel.ShutdownFunc(otel.Noop)
	if cfg.Tracing.Enabled {
		var err error
		shutdownTracer, err = otel.InitTracer(cfg.Tracing.ServiceName, log, os.Stdout)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
	}

	repo, err := sqlite.NewSQLiteStorage(cfg.Database.DSN, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	if err := gateway.SeedRegistry(ctx, repo, cfg.Seed.Models, log); err != nil {
		return fmt.Errorf("seed registry: %w", err)
	}

	slot, closeSlot, err := newOverrideStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSlot()

	d := dispatch.New(log, slot)
	gateway.BootstrapProviders(d, cfg.Providers, log)

	var ingestor analytics.Ingestor = analytics.Discard{}
	if cfg.Analytics.Enabled {
		ingestor = analytics.NewIngestor(log, repo, analytics.Options{
			BufferSize:    cfg.Analytics.BufferSize,
			BatchSize:     cfg.Analytics.BatchSize,
			FlushInterval: cfg.Analytics.FlushInterval,
		})
	}
	ingestor.Start(context.Background())

	svc := gateway.NewService(log, repo, d, slot, ingestor, gateway.Options{
		QueryTimeout: cfg.Database.QueryTimeout,
	})

	if cfg.Server.CheckUpdates {
		go version.NewChecker().CheckForUpdates(ctx, log)
	}

	srv := server.New(cfg, log, svc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		ingestor.Stop()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	ingestor.Stop()
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("Tracer shutdown failed", zap.Error(err))
	}

	return nil
}

// newOverrideStore picks the shared redis slot when enabled so every replica sees
// the same file-upload target.
func newOverrideStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (override.Store, func(), error) {
	if !cfg.Redis.Enabled {
		return override.NewMemory(), func() {}, nil
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	log.Info("Using shared override store", zap.String("addr", cfg.Redis.Addr))
	return override.NewShared(rc), func() { _ = rc.Close() }, nil
}
