package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)
	clk := cli.InitClock(logger, cfg)

	result := cli.InitBackend(context.Background(), logger, cfg, false)
	policy := cli.UrgencyPolicy(cfg)

	dashboard := services.NewDashboardService(result.Store, result.Store, clk, services.DashboardOptions{
		Policy:                policy,
		DefaultAlertThreshold: cfg.BudgetAlertDefault,
		CacheTTL:              cfg.DashboardCacheTTL,
	})
	obligations := services.NewObligationService(result.Store, result.Publisher, clk, policy)
	obligations.OnChange(dashboard.Invalidate)

	cacheManager := cache.NewManager()
	if c := dashboard.Cache(); c != nil {
		cacheManager.Register(c)
	}
	cacheManager.StartCleanup(5 * time.Minute)

	deps := apphttp.Deps{
		Dashboard:     dashboard,
		Obligations:   obligations,
		Clock:         clk,
		Logger:        logger.WithComponent(log.ComponentHTTP),
		UpcomingCount: cfg.UpcomingCount,
	}
	if p, ok := result.Store.(backend.Pinger); ok {
		deps.Ready = p.Ping
	}
	srv := apphttp.NewServer(":"+cfg.Port, deps)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cacheManager.Stop()
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", log.FieldError, err)
		}
	})

	logger.Info("Starting fintrack server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"timezone", clk.Location().String(),
		"today", clk.Today().String(),
		"amqp", result.Publisher != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
