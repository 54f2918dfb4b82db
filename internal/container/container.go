package container

import (
	"context"
	"fmt"

	"symrand/adapters/excel"
	"symrand/adapters/generator"
	"symrand/adapters/memory"
	"symrand/adapters/sqlstore"
	"symrand/app"
	"symrand/internal"
	"symrand/internal/config"
	"symrand/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Sampling
	Generator *generator.MersenneTwister
	Kernel    *app.Kernel

	// Persistence
	Repo ports.ConfigRepository

	// Export
	Excel *excel.Writer
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(cfg.LogLevel())
	}

	gen := generator.NewMersenneTwister()
	return &Container{
		Config:    cfg,
		Logger:    logger,
		Generator: gen,
		Kernel:    app.NewKernel(gen, logger),
		Excel:     excel.NewWriter(logger),
	}, nil
}

// OpenStore connects the configured random state store
func (c *Container) OpenStore(ctx context.Context) error {
	if c.Repo != nil {
		return nil
	}

	switch c.Config.Store.Driver {
	case config.DriverMemory:
		c.Repo = memory.NewRepository()
	case config.DriverSQLite:
		repo, err := sqlstore.OpenSQLite(ctx, c.Config.Store.SQLitePath, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to open sqlite store: %w", err)
		}
		c.Repo = repo
	case config.DriverPostgres:
		repo, err := sqlstore.OpenPostgres(ctx, c.Config.Store.DatabaseURL, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to open postgres store: %w", err)
		}
		c.Repo = repo
	default:
		return fmt.Errorf("unknown store driver %q", c.Config.Store.Driver)
	}

	c.Logger.Info("Random state store opened: %s", c.Config.Store.Driver)
	return nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Repo == nil {
		return nil
	}
	err := c.Repo.Close()
	c.Repo = nil
	return err
}
