package notice

import (
	"context"
	"fmt"
	"time"

	"agegate/internal/adapters/storage"
	domain "agegate/internal/domain/notice"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns notices for an option.
// PRE: optionName is non-empty
// POST: Ordered by created_at, then insertion order
func (s *SQLiteStore) List(ctx context.Context, optionName string) ([]domain.Notice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, option_name, code, message, created_at FROM settings_notice
		 WHERE option_name = ? ORDER BY created_at, rowid`, optionName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notice
	for rows.Next() {
		var n domain.Notice
		var createdAt string
		if err := rows.Scan(&n.ID, &n.OptionName, &n.Code, &n.Message, &createdAt); err != nil {
			return nil, err
		}
		n.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("notice %s created_at: %w", n.ID, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ReplaceAll swaps an option's notices in one transaction.
// PRE: every notice has been validated and belongs to optionName
// POST: List(optionName) returns exactly notices
func (s *SQLiteStore) ReplaceAll(ctx context.Context, optionName string, notices []domain.Notice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings_notice WHERE option_name = ?`, optionName); err != nil {
		return fmt.Errorf("clear notices: %w", err)
	}
	for _, n := range notices {
		if n.OptionName != optionName {
			return fmt.Errorf("notice %s belongs to %q, not %q", n.ID, n.OptionName, optionName)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings_notice (id, option_name, code, message, created_at) VALUES (?, ?, ?, ?, ?)`,
			n.ID, n.OptionName, n.Code, n.Message, n.CreatedAt.UTC().Format(timeLayout)); err != nil {
			return fmt.Errorf("insert notice %s: %w", n.ID, err)
		}
	}
	return tx.Commit()
}
