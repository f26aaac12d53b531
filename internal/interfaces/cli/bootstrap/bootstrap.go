// Package bootstrap loads configuration, logging and the database for the
// CLI commands.
package bootstrap

import (
	"fmt"

	"ticketapp/internal/infrastructure/config"
	"ticketapp/internal/infrastructure/database"
	"ticketapp/internal/shared/logger"
)

// Options are the persistent flags shared by every command.
type Options struct {
	Env        string
	ConfigPath string
}

// Setup loads configuration, initializes the logger and opens the database.
// Callers must defer Teardown.
func Setup(opts Options) (*config.Config, logger.Interface, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFile(opts.ConfigPath, opts.Env)
	} else {
		cfg, err = config.Load(opts.Env)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

func Teardown() {
	if err := database.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
	_ = logger.Sync()
}
