package main

import (
	"context"
	"flag"
	"os"
	"time"

	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/worker"
)

func main() {
	once := flag.Bool("once", false, "run a single reminder pass and exit")
	flag.Parse()

	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)
	clk := cli.InitClock(logger, cfg)

	logger.Info("Starting reminder-worker", "schedule", cfg.ReminderCron, "timezone", clk.Location().String())

	// AMQP is mandatory here.
	result := cli.InitBackend(context.Background(), logger, cfg, true)
	processor := services.NewReminderProcessor(result.Store, result.Publisher, clk, cli.UrgencyPolicy(cfg), cfg.UpcomingCount)

	wlog := logger.WithComponent(log.ComponentWorker)
	w, err := worker.NewReminderWorker(processor, cfg.ReminderCron, clk.Location(), 2*time.Minute, wlog)
	if err != nil {
		logger.Error("Failed to create reminder worker", log.FieldError, err)
		_ = result.Cleanup()
		os.Exit(1)
	}

	if *once {
		_, err := w.RunOnce(context.Background())
		if cerr := result.Cleanup(); cerr != nil {
			logger.Error("Backend cleanup error", log.FieldError, cerr)
		}
		if err != nil {
			os.Exit(1)
		}
		return
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := w.Stop(ctx); err != nil {
			logger.Warn("Reminder run still in progress at shutdown", log.FieldError, err)
		}
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", log.FieldError, err)
		}
	})

	w.Start(ctx)
	cli.WaitForShutdown(ctx, done)
	logger.Info("Reminder worker stopped gracefully")
}
