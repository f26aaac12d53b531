package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ticketapp/internal/infrastructure/database"
	"ticketapp/internal/infrastructure/migration"
	"ticketapp/internal/shared/config"
)

// setupTestDB opens a migrated sqlite database in a temp directory.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "repo.db"),
		BusyTimeoutMS: 1000,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	require.NoError(t, migration.InitializeSchema(context.Background(), db))
	return db
}

func uintPtr(v uint) *uint { return &v }
