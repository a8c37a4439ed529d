package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"agegate/internal/adapters/storage"
	domain "agegate/internal/domain/settings"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store on the option table.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Get retrieves a settings record by option name.
// PRE: name is non-empty
// POST: Returns defaults and false if no record exists
func (s *SQLiteStore) Get(ctx context.Context, name string, defaults domain.Settings) (domain.Settings, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM option WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return defaults.Clone(), false, nil
	}
	if err != nil {
		return domain.Settings{}, false, fmt.Errorf("load option %s: %w", name, err)
	}

	out := defaults.Clone()
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.Settings{}, false, fmt.Errorf("decode option %s: %w", name, err)
	}
	return out, true, nil
}

// Set replaces the record stored under name.
// PRE: value has been through settings.Validate
// POST: Exactly one record exists for name
func (s *SQLiteStore) Set(ctx context.Context, name string, value domain.Settings) error {
	if value.Memberships == nil {
		value.Memberships = []string{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode option %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO option (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		name, string(raw), s.now().UTC().Format(timeLayout))
	return err
}
