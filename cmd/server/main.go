package main

import (
	"fmt"
	"os"

	"github.com/dmarkova/slacklite/internal/config"
	"github.com/dmarkova/slacklite/internal/observ"
	"github.com/dmarkova/slacklite/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Stop()

	return srv.Run()
}
