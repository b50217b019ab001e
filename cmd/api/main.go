package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arpitbiyaniazz/ecooracal/internal/advisor"
	"github.com/arpitbiyaniazz/ecooracal/internal/config"
	"github.com/arpitbiyaniazz/ecooracal/internal/geminiservice"
	"github.com/arpitbiyaniazz/ecooracal/internal/server"
	"github.com/arpitbiyaniazz/ecooracal/internal/utility"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func gracefulShutdown(ctx context.Context, apiServer *http.Server, timeout time.Duration) error {
	// Wait for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")

	// In-flight requests get `timeout` to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exiting")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}

	logger := utility.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stdout).
		With().Str("service", cfg.App.Name).Str("env", cfg.App.Environment).Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	if cfg.EnvFile != "" {
		log.Info().Str("path", cfg.EnvFile).Msg("Loaded .env")
	}

	gemini := geminiservice.NewClient(geminiservice.Config{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		BaseURL:     cfg.Gemini.BaseURL,
		Timeout:     cfg.Gemini.Timeout,
		Temperature: cfg.Gemini.Temperature,
	}, logger)
	if !gemini.Configured() {
		log.Warn().Msg("GEMINI_API_KEY is not set; advice requests will fail until it is configured")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	adv := advisor.New(gemini,
		advisor.WithLogger(logger),
		advisor.WithMetrics(advisor.NewMetrics(registry)),
	)

	apiServer := server.NewServer(cfg.Server, server.Deps{
		Advisor:      adv,
		Gatherer:     registry,
		AIConfigured: gemini.Configured(),
		Logger:       logger,
	})

	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", apiServer.Addr).Str("model", cfg.Gemini.Model).Msg("HTTP server listening")
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := gracefulShutdown(gctx, apiServer, cfg.Server.ShutdownTimeout)
		stop() // Allow Ctrl+C to force shutdown
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server error")
	}
	log.Info().Msg("Graceful shutdown complete.")
}
