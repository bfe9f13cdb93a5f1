package main

import (
	"context"
	"os"
	"os/signal"

	_ "github.com/lib/pq"

	"cmanagement/application"
	"cmanagement/config"
	"cmanagement/logger"
)

func main() {
	logr := logger.GetInstance()

	cfg, err := config.Load()
	if err != nil {
		logr.Fatalf("config load failed: %v", err)
	}

	if err := logr.Initialize(cfg.LogDir, cfg.LogLevel); err != nil {
		logr.Fatalf("logger initialization failed: %v", err)
	}

	logr.Infof("Application starting. LogLevel=%d", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	app := application.NewApplication()
	if err := app.Configure(cfg, logr, ctx); err != nil {
		logr.Fatalf("configuration failed: %v", err)
	}
	app.Run(ctx)

	logr.Info("Application stopped")
}
