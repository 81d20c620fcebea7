// Package main implements the entry point for the TaskMate API server, which
// stores per-account task records and pushes change notifications to
// connected websocket clients.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/phrazzld/taskmate-api/internal/config"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "taskmate-server: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, opens the configured store backend and serves
// HTTP until the process is signalled.
func run(ctx context.Context, args []string) error {
	cfg, err := loadAppConfig(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("environment", cfg.Server.Environment),
		slog.String("db_driver", cfg.Database.Driver))

	backend, err := openStores(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Database.Driver, err)
	}

	app, err := newApplication(cfg, l, backend)
	if err != nil {
		_ = backend.close(context.Background())
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig parses the command line and loads the configuration.
func loadAppConfig(args []string) (*config.Config, error) {
	fs := pflag.NewFlagSet("taskmate-server", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
