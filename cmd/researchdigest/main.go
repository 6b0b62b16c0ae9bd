package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ResearchDigest/internal/app"
	"ResearchDigest/internal/config"
	"ResearchDigest/internal/logging"
)

func main() {
	daily := flag.Bool("daily", false, "run the digest once per 24h instead of a single run")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger, os.Getenv)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *daily {
		err = application.RunDaily(ctx)
	} else {
		err = application.Run(ctx)
	}
	if err != nil {
		logger.Error("digest run failed", "error", err)
		os.Exit(1)
	}
}
