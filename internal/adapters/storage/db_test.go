package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TestInitDB_CreatesTables verifies every gate table exists after InitDB.
func TestInitDB_CreatesTables(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	got := getTableNames(t, db)
	want := []string{"audit_event", "custom_field", "membership", "option", "settings_notice"}
	if len(got) != len(want) {
		t.Fatalf("tables = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tables[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestInitDB_Idempotent verifies InitDB can run twice without losing rows.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO membership (id, name) VALUES ('m1', 'Gold')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM membership`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("membership rows = %d, want 1", count)
	}
}

// TestInitDB_CustomFieldKeysMayRepeat verifies the registry keeps duplicate keys.
func TestInitDB_CustomFieldKeysMayRepeat(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := db.Exec(`INSERT INTO custom_field (position, field_key, field_type) VALUES (?, 'dob', 'date')`, i); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
}

func TestDSN(t *testing.T) {
	got := DSN("gate.db")
	if got[:8] != "gate.db?" {
		t.Errorf("DSN = %q, want path prefix", got)
	}
}
