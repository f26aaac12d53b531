package permission

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketapp/internal/infrastructure/database"
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/logger"
)

func TestEnforcer_DefaultRules(t *testing.T) {
	e, err := NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{"admin", "ticket", "delete", true},
		{"admin", "admin_console", "access", true},
		{"admin", "user", "delete", true},
		{"user", "ticket", "edit_own", true},
		{"user", "ticket", "edit", false},
		{"user", "ticket", "delete", false},
		{"user", "admin_console", "access", false},
		{"guest", "ticket", "view", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.resource+"/"+tt.action, func(t *testing.T) {
			ok, err := e.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEnforcer_AddRemovePolicy(t *testing.T) {
	e, err := NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, e.AddPolicy("user", "ticket", "delete"))
	ok, err := e.Enforce("user", "ticket", "delete")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, e.RemovePolicy("user", "ticket", "delete"))
	ok, err = e.Enforce("user", "ticket", "delete")
	require.NoError(t, err)
	assert.False(t, ok)

	perms, err := e.GetPermissionsForRole("user")
	require.NoError(t, err)
	assert.Len(t, perms, 3)
}

func TestNewEnforcerWithDB_SeedsOnce(t *testing.T) {
	db, err := database.Open(&config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "rules.db"),
		BusyTimeoutMS: 1000,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	first, err := NewEnforcerWithDB(db, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, first.AddPolicy("user", "ticket", "delete"))

	second, err := NewEnforcerWithDB(db, logger.NewNopLogger())
	require.NoError(t, err)

	ok, err := second.Enforce("user", "ticket", "delete")
	require.NoError(t, err)
	assert.True(t, ok, "stored rules are reloaded, not reseeded")

	var count int64
	require.NoError(t, db.Table("casbin_rule").Count(&count).Error)
	assert.Equal(t, int64(11), count)
}
