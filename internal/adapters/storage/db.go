package storage

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is bumped whenever InitDB's schema changes shape.
const SchemaVersion = 1

// DSN returns the modernc sqlite DSN for path with WAL, foreign keys and a
// busy timeout applied to every pooled connection.
func DSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created; existing data is untouched
func InitDB(db *sql.DB) error {
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// option holds named JSON records; the gate uses exactly one.
	// custom_field keeps host registry order in position; keys may repeat.
	schema := `
	CREATE TABLE IF NOT EXISTS option (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS membership (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS custom_field (
		position INTEGER PRIMARY KEY,
		field_key TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		field_type TEXT NOT NULL,
		show_on_signup INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_custom_field_key ON custom_field(field_key);

	CREATE TABLE IF NOT EXISTS settings_notice (
		id TEXT PRIMARY KEY,
		option_name TEXT NOT NULL,
		code TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_settings_notice_option ON settings_notice(option_name, created_at);

	CREATE TABLE IF NOT EXISTS audit_event (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		action TEXT NOT NULL,
		actor TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_audit_event_timestamp ON audit_event(timestamp);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
