package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/samvad-fetcher/internal/cli"
	"github.com/samvad-hq/samvad-fetcher/internal/config"
	"github.com/samvad-hq/samvad-fetcher/internal/logger"
	"github.com/samvad-hq/samvad-fetcher/internal/storage"
	"github.com/samvad-hq/samvad-fetcher/pkg/httpclient"
)

var version = "dev"

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return &cli.ConfigError{Err: fmt.Errorf("load config: %w", err)}
	}

	sugar, err := logger.Init(cfg)
	if err != nil {
		return &cli.ConfigError{Err: fmt.Errorf("init logger: %w", err)}
	}
	defer logger.Close()
	log := logger.New(sugar)

	logger.DebugObj("fetch starting", "config", cfg)

	history, err := storage.NewHistory(cfg.HistoryStore, cfg.HistoryPath, storage.Options{
		EntryTTL:        cfg.HistoryTTL,
		CleanupInterval: cfg.HistoryCleanupInterval,
	})
	if err != nil {
		logger.ErrorObj("failed to open history", "error", err)
		return &cli.ConfigError{Err: fmt.Errorf("open history: %w", err)}
	}
	defer history.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(&cli.App{
		Client:  httpclient.NewRestyClient(cfg.HTTPTimeout, log),
		History: history,
		Log:     log,
		Version: version,
	})
	return root.ExecuteContext(ctx)
}
