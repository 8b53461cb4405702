// Package cli provides common CLI initialization utilities shared by
// cmd/fintrack and cmd/reminder-worker.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/backend"
	"fintrack/internal/clock"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// NewLogger builds the application logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config, out io.Writer) *log.Logger {
	return log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    out,
	})
}

// SetupLogger initializes structured logging on stdout and sets it as the
// default logger.
func SetupLogger(cfg *config.Config) *log.Logger {
	logger := NewLogger(cfg, os.Stdout)
	log.SetDefault(logger)
	return logger
}

// InitClock returns the calendar clock for the configured timezone or exits.
func InitClock(logger *log.Logger, cfg *config.Config) *clock.System {
	clk, err := clock.NewSystemFromName(cfg.Timezone)
	if err != nil {
		logger.Error("Failed to load timezone", log.FieldError, err, "timezone", cfg.Timezone)
		os.Exit(1)
	}
	return clk
}

// InitBackend creates the record store and optional publisher or exits.
func InitBackend(ctx context.Context, logger *log.Logger, cfg *config.Config, requireAMQP bool) *backend.BackendResult {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	bcfg.RequireAMQP = requireAMQP

	result, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return result
}

// UrgencyPolicy builds the engine policy from configuration.
func UrgencyPolicy(cfg *config.Config) services.UrgencyPolicy {
	return services.UrgencyPolicy{SoonDays: cfg.UrgencySoonDays, WeekDays: cfg.UrgencyWeekDays}
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when cleanup is complete.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func(ctx context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		} else {
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup ran.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
