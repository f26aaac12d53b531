package migration

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"ticketapp/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   *slog.Logger
}

// NewManager creates a manager backed by the embedded goose migrations.
func NewManager() *Manager {
	return NewManagerWithStrategy(NewGooseStrategy())
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Debug("starting database migration",
		"strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Error("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Debug("database migration completed successfully",
		"strategy", m.strategy.GetName())

	return nil
}

// MigrateDown rolls back steps migrations.
func (m *Manager) MigrateDown(ctx context.Context, db *gorm.DB, steps int) error {
	return m.strategy.MigrateDown(ctx, db, steps)
}

// Version returns the current schema version.
func (m *Manager) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	return m.strategy.GetVersion(ctx, db)
}

// Status reports the state of every known migration.
func (m *Manager) Status(ctx context.Context, db *gorm.DB) error {
	return m.strategy.Status(ctx, db)
}

// InitializeSchema brings db up to the latest schema version. It is safe to
// call on every start.
func InitializeSchema(ctx context.Context, db *gorm.DB) error {
	return NewManager().Migrate(ctx, db)
}
