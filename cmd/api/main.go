package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"homework-planner/config"
	"homework-planner/internal/app"
	"homework-planner/internal/httpserver"
	"homework-planner/pkg/log"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting homework planner...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Pipeline
	pipeline, err := app.Build(ctx, logger, cfg)
	if err != nil {
		logger.Error(ctx, "Failed to build pipeline: ", err)
		return
	}
	defer pipeline.Close()

	// 4. Scheduler
	go pipeline.Orchestrator.Start(ctx)

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		Orchestrator: pipeline.Orchestrator,
		Planner:      pipeline.Planner,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
