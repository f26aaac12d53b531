package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"ticketapp/internal/shared/logger"
)

func init() {
	goose.AddNamedMigrationNoTxContext("00003_legacy_ticket_layout.go", upLegacyTicketLayout, downLegacyTicketLayout)
}

// ticketColumns lists the current tickets layout in table order.
var ticketColumns = []string{
	"ticket_id",
	"ticket_type",
	"subject",
	"summary",
	"prerequisites",
	"steps_to_replicate",
	"outcome",
	"expected_outcome",
	"status",
	"user_id",
	"parent_id",
	"created_by",
	"created_at",
}

const createTicketsNewSQL = `CREATE TABLE tickets_new (
    ticket_id INTEGER PRIMARY KEY AUTOINCREMENT,
    ticket_type TEXT NOT NULL DEFAULT 'Bug',
    subject TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    prerequisites TEXT,
    steps_to_replicate TEXT,
    outcome TEXT,
    expected_outcome TEXT,
    status TEXT NOT NULL DEFAULT 'New',
    user_id INTEGER NULL,
    parent_id INTEGER NULL,
    created_by TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL,
    FOREIGN KEY (parent_id) REFERENCES tickets(ticket_id) ON DELETE SET NULL
)`

// upLegacyTicketLayout rebuilds tickets tables created by older releases,
// which keyed rows by "id" and had no ticket_type column. Row ids are kept.
// Everything runs on one pinned connection because PRAGMA foreign_keys is
// connection scoped and must be off while the table is swapped.
func upLegacyTicketLayout(ctx context.Context, db *sql.DB) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	cols, err := tableColumns(ctx, conn, "tickets")
	if err != nil {
		return err
	}
	if !needsRebuild(cols) {
		return nil
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("failed to disable foreign keys: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), "PRAGMA foreign_keys = ON")
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin rebuild transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := execAll(ctx, tx, "DROP TABLE IF EXISTS tickets_new", createTicketsNewSQL, copyTicketsSQL(cols)); err != nil {
		return err
	}

	detachedUsers, err := rowsAffected(ctx, tx,
		"UPDATE tickets_new SET user_id = NULL WHERE user_id IS NOT NULL AND user_id NOT IN (SELECT id FROM users)")
	if err != nil {
		return err
	}
	detachedParents, err := rowsAffected(ctx, tx,
		"UPDATE tickets_new SET parent_id = NULL WHERE parent_id IS NOT NULL AND parent_id NOT IN (SELECT ticket_id FROM tickets_new)")
	if err != nil {
		return err
	}
	if detachedUsers > 0 || detachedParents > 0 {
		logger.WithComponent("migration.legacy").Warn("cleared dangling ticket references",
			"assignees_cleared", detachedUsers,
			"parents_cleared", detachedParents,
		)
	}

	if err := execAll(ctx, tx, "DROP TABLE tickets", "ALTER TABLE tickets_new RENAME TO tickets"); err != nil {
		return err
	}

	if err := checkForeignKeys(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tickets rebuild: %w", err)
	}
	return nil
}

func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to rebuild tickets table: %w", err)
		}
	}
	return nil
}

func rowsAffected(ctx context.Context, tx *sql.Tx, stmt string) (int64, error) {
	res, err := tx.ExecContext(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("failed to rebuild tickets table: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count rebuilt rows: %w", err)
	}
	return n, nil
}

// downLegacyTicketLayout is a no-op; the legacy layout is never restored.
func downLegacyTicketLayout(context.Context, *sql.DB) error {
	return nil
}

func tableColumns(ctx context.Context, conn *sql.Conn, table string) (map[string]bool, error) {
	rows, err := conn.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan %s column info: %w", table, err)
		}
		cols[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s column info: %w", table, err)
	}
	return cols, nil
}

func needsRebuild(cols map[string]bool) bool {
	if len(cols) == 0 {
		return false
	}
	for _, c := range ticketColumns {
		if !cols[c] {
			return true
		}
	}
	return false
}

// copyTicketsSQL builds the INSERT ... SELECT that maps whatever columns
// the old table has onto the current layout.
func copyTicketsSQL(cols map[string]bool) string {
	has := func(c string) bool { return cols[c] }

	exprs := make([]string, 0, len(ticketColumns))
	for _, c := range ticketColumns {
		var expr string
		switch c {
		case "ticket_id":
			switch {
			case has("ticket_id"):
				expr = "ticket_id"
			case has("id"):
				expr = "id"
			default:
				expr = "NULL"
			}
		case "ticket_type":
			expr = "'Bug'"
			if has(c) {
				expr = "COALESCE(ticket_type, 'Bug')"
			}
		case "subject":
			switch {
			case has("subject") && has("summary"):
				expr = "COALESCE(subject, summary, 'Untitled')"
			case has("subject"):
				expr = "COALESCE(subject, 'Untitled')"
			case has("summary"):
				expr = "COALESCE(summary, 'Untitled')"
			default:
				expr = "'Untitled'"
			}
		case "summary":
			expr = "''"
			if has(c) {
				expr = "COALESCE(summary, '')"
			}
		case "status":
			expr = "'New'"
			if has(c) {
				expr = "COALESCE(status, 'New')"
			}
		case "created_at":
			expr = "CURRENT_TIMESTAMP"
			if has(c) {
				expr = "COALESCE(created_at, CURRENT_TIMESTAMP)"
			}
		default:
			expr = "NULL"
			if has(c) {
				expr = c
			}
		}
		exprs = append(exprs, expr)
	}

	return fmt.Sprintf("INSERT INTO tickets_new (%s) SELECT %s FROM tickets",
		strings.Join(ticketColumns, ", "),
		strings.Join(exprs, ", "))
}

func checkForeignKeys(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, "PRAGMA foreign_key_check(tickets)")
	if err != nil {
		return fmt.Errorf("failed to check foreign keys: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		return fmt.Errorf("tickets rebuild left dangling foreign keys")
	}
	return rows.Err()
}
