package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"handi-menu/internal/config"
	"handi-menu/internal/database"
	"handi-menu/internal/handler"
	"handi-menu/internal/recommend"
	"handi-menu/internal/repository"
	"handi-menu/internal/router"
	"handi-menu/internal/seed"
	"handi-menu/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting handi-menu API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	menuRepo := repository.NewMenuRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	historyRepo := repository.NewHistoryRepository(pool, logger)

	if cfg.Seed.Enabled {
		seedMenu(ctx, cfg, menuRepo, logger)
	}

	menuService := service.NewMenuService(menuRepo, logger)
	orderService := service.NewOrderService(orderRepo, historyRepo, service.OrderOptions{
		StrictTransitions: cfg.Orders.StrictTransitions,
		ArchiveRetries:    cfg.Orders.ArchiveMaxRetries,
	}, logger)
	historyService := service.NewHistoryService(historyRepo, orderRepo, logger)
	statsService := service.NewStatsService(orderRepo, historyRepo, logger)

	assistant, err := newAssistant(ctx, cfg.Assistant, logger)
	if err != nil {
		return err
	}

	mux := router.New(router.Handlers{
		Menu:      handler.NewMenuHandler(menuService, logger),
		Orders:    handler.NewOrderHandler(orderService, logger),
		History:   handler.NewHistoryHandler(historyService, logger),
		Stats:     handler.NewStatsHandler(statsService, logger),
		Assistant: handler.NewAssistantHandler(assistant, logger),
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedMenu upserts the seed catalogue. Failures are logged and do not stop
// the server.
func seedMenu(ctx context.Context, cfg *config.Config, menuRepo repository.MenuRepository, logger zerolog.Logger) {
	fileLoader := seed.NewFileLoader(logger)

	var s3Loader seed.Loader
	if cfg.S3.Enabled {
		l, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for seed file (S3 disabled)")
	}

	loader := seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	seedCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if _, err := seed.NewSeeder(loader, menuRepo, logger).Run(seedCtx, cfg.Seed.File); err != nil {
		logger.Error().Err(err).Str("file", cfg.Seed.File).Msg("menu seeding failed")
	}
}

// newAssistant builds the recommendation service. Without an API key it
// serves fallbacks only.
func newAssistant(ctx context.Context, cfg config.AssistantConfig, logger zerolog.Logger) (*recommend.Service, error) {
	opts := recommend.Options{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}

	if !cfg.Enabled() {
		logger.Info().Msg("GEMINI_API_KEY not set, assistant uses fallback responses")
		return recommend.New(nil, opts, logger), nil
	}

	gen, err := recommend.NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini: %w", err)
	}

	logger.Info().Str("model", cfg.Model).Msg("gemini assistant enabled")
	return recommend.New(gen, opts, logger), nil
}
