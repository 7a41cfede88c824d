package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/recoverlink/recoverlink/internal/buildinfo"
	"github.com/recoverlink/recoverlink/internal/cli"
	"github.com/recoverlink/recoverlink/internal/config"
	"github.com/recoverlink/recoverlink/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// warnings and up only, so import diagnostics do not drown the prompt
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
