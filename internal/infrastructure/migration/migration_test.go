package migration

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ticketapp/internal/infrastructure/database"
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "migration.db"),
		BusyTimeoutMS: 1000,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func columnNames(t *testing.T, db *gorm.DB, table string) []string {
	t.Helper()

	type columnInfo struct {
		Name string
	}
	var cols []columnInfo
	require.NoError(t, db.Raw("SELECT name FROM pragma_table_info(?)", table).Scan(&cols).Error)

	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
	}
	return names
}

func TestInitializeSchema_FreshDatabase(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, InitializeSchema(ctx, db))

	assert.Equal(t, ticketColumns, columnNames(t, db, "tickets"))
	assert.ElementsMatch(t,
		[]string{"id", "username", "password_hash", "role", "created_at"},
		columnNames(t, db, "users"))

	version, err := NewManager().Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)

	var indexCount int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND tbl_name = 'tickets' AND name LIKE 'idx_tickets_%'",
	).Scan(&indexCount).Error)
	assert.Equal(t, int64(4), indexCount)
}

func TestInitializeSchema_RerunIsNoop(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, InitializeSchema(ctx, db))
	require.NoError(t, db.Exec(
		"INSERT INTO users (username, password_hash, role) VALUES ('alice', x'00', 'user')",
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO tickets (subject, summary, created_by) VALUES ('Login fails', 's', 'alice')",
	).Error)

	require.NoError(t, InitializeSchema(ctx, db))

	var users, tickets int64
	require.NoError(t, db.Table("users").Count(&users).Error)
	require.NoError(t, db.Table("tickets").Count(&tickets).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), tickets)
}

func TestInitializeSchema_RoleCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, InitializeSchema(context.Background(), db))

	err := db.Exec(
		"INSERT INTO users (username, password_hash, role) VALUES ('mallory', x'00', 'root')",
	).Error
	assert.Error(t, err)
}

func TestInitializeSchema_LegacyIDLayout(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash BLOB NOT NULL,
		role TEXT NOT NULL CHECK(role IN ('user', 'admin')),
		created_at TEXT NOT NULL
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		summary TEXT NOT NULL,
		prerequisites TEXT,
		steps_to_replicate TEXT,
		outcome TEXT,
		expected_outcome TEXT,
		status TEXT NOT NULL DEFAULT 'Open' CHECK(status IN ('Open','In Progress','Closed')),
		created_by TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO tickets (id, summary, status, created_by, created_at) VALUES (7, 'Crash on save', 'Open', 'bob', '2024-01-02 10:00:00')",
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO tickets (id, summary, status, created_by) VALUES (9, 'Slow search', 'Closed', 'carol')",
	).Error)

	require.NoError(t, InitializeSchema(ctx, db))

	assert.Equal(t, ticketColumns, columnNames(t, db, "tickets"))

	type row struct {
		TicketID   uint
		TicketType string
		Subject    string
		Summary    string
		Status     string
		CreatedBy  string
	}
	var rows []row
	require.NoError(t, db.Raw(
		"SELECT ticket_id, ticket_type, subject, summary, status, created_by FROM tickets ORDER BY ticket_id",
	).Scan(&rows).Error)

	require.Len(t, rows, 2)
	assert.Equal(t, row{7, "Bug", "Crash on save", "Crash on save", "Open", "bob"}, rows[0])
	assert.Equal(t, row{9, "Bug", "Slow search", "Slow search", "Closed", "carol"}, rows[1])

	// The rebuilt table accepts statuses outside the old CHECK list.
	require.NoError(t, db.Exec("UPDATE tickets SET status = 'Released' WHERE ticket_id = 7").Error)
}

func TestInitializeSchema_MissingTicketTypeLayout(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash BLOB NOT NULL,
		role TEXT NOT NULL CHECK(role IN ('user', 'admin')),
		created_at TEXT NOT NULL
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE tickets (
		ticket_id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject TEXT NOT NULL,
		summary TEXT NOT NULL,
		prerequisites TEXT,
		steps_to_replicate TEXT,
		outcome TEXT,
		expected_outcome TEXT,
		status TEXT NOT NULL DEFAULT 'New',
		user_id INTEGER NULL,
		parent_id INTEGER NULL,
		created_by TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL,
		FOREIGN KEY (parent_id) REFERENCES tickets(ticket_id) ON DELETE SET NULL
	)`).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO users (id, username, password_hash, role, created_at) VALUES (3, 'dave', x'00', 'user', '2024-01-01T00:00:00')",
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO tickets (ticket_id, subject, summary, status, user_id, created_by) VALUES (1, 'Parent', 'p', 'New', 3, 'dave')",
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO tickets (ticket_id, subject, summary, status, parent_id, created_by) VALUES (2, 'Child', 'c', 'Open', 1, 'dave')",
	).Error)

	require.NoError(t, InitializeSchema(ctx, db))

	assert.Equal(t, ticketColumns, columnNames(t, db, "tickets"))

	type row struct {
		TicketID   uint
		TicketType string
		UserID     *uint
		ParentID   *uint
	}
	var rows []row
	require.NoError(t, db.Raw(
		"SELECT ticket_id, ticket_type, user_id, parent_id FROM tickets ORDER BY ticket_id",
	).Scan(&rows).Error)

	require.Len(t, rows, 2)
	assert.Equal(t, "Bug", rows[0].TicketType)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, uint(3), *rows[0].UserID)
	require.NotNil(t, rows[1].ParentID)
	assert.Equal(t, uint(1), *rows[1].ParentID)

	// Foreign keys survive the rebuild.
	require.NoError(t, db.Exec("DELETE FROM tickets WHERE ticket_id = 1").Error)
	var parent sql.NullInt64
	require.NoError(t, db.Raw("SELECT parent_id FROM tickets WHERE ticket_id = 2").Scan(&parent).Error)
	assert.False(t, parent.Valid)
}

func TestInitializeSchema_LegacyDanglingReferencesAreLogged(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	var buf bytes.Buffer
	prev := logger.Logger
	logger.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	t.Cleanup(func() { logger.Logger = prev })

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash BLOB NOT NULL,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		summary TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Open',
		user_id INTEGER,
		parent_id INTEGER,
		created_by TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO tickets (id, summary, user_id, parent_id, created_by) VALUES (1, 'Orphan', 42, 77, 'bob')",
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO tickets (id, summary, parent_id, created_by) VALUES (2, 'Child', 1, 'bob')",
	).Error)

	require.NoError(t, InitializeSchema(ctx, db))

	type row struct {
		TicketID uint
		UserID   *uint
		ParentID *uint
	}
	var rows []row
	require.NoError(t, db.Raw("SELECT ticket_id, user_id, parent_id FROM tickets ORDER BY ticket_id").Scan(&rows).Error)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].UserID)
	assert.Nil(t, rows[0].ParentID)
	require.NotNil(t, rows[1].ParentID)
	assert.Equal(t, uint(1), *rows[1].ParentID)

	out := buf.String()
	assert.Contains(t, out, "cleared dangling ticket references")
	assert.Contains(t, out, "assignees_cleared=1")
	assert.Contains(t, out, "parents_cleared=1")
}

func TestManager_MigrateDown(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	manager := NewManager()

	require.NoError(t, manager.Migrate(ctx, db))
	require.NoError(t, manager.MigrateDown(ctx, db, 4))

	version, err := manager.Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
	assert.False(t, db.Migrator().HasTable("tickets"))
	assert.False(t, db.Migrator().HasTable("users"))

	assert.Error(t, manager.MigrateDown(ctx, db, 0))
}

func TestNeedsRebuild(t *testing.T) {
	current := make(map[string]bool)
	for _, c := range ticketColumns {
		current[c] = true
	}
	assert.False(t, needsRebuild(current))
	assert.False(t, needsRebuild(map[string]bool{}))

	legacy := map[string]bool{"id": true, "summary": true}
	assert.True(t, needsRebuild(legacy))
	assert.Contains(t, copyTicketsSQL(legacy), "COALESCE(summary, 'Untitled')")
}
