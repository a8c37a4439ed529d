package customfield

import (
	"context"
	"fmt"

	"agegate/internal/adapters/storage"
	domain "agegate/internal/domain/customfield"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns the registry.
// POST: Ordered by position; duplicate keys are all returned
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Field, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT field_key, name, field_type, show_on_signup FROM custom_field ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Field
	for rows.Next() {
		var f domain.Field
		var show int
		if err := rows.Scan(&f.Key, &f.Name, &f.Type, &show); err != nil {
			return nil, err
		}
		f.ShowOnSignup = show == 1
		out = append(out, f)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the registry in one transaction.
// PRE: every field has been validated
// POST: List returns exactly fields, in the same order
func (s *SQLiteStore) ReplaceAll(ctx context.Context, fields []domain.Field) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_field`); err != nil {
		return fmt.Errorf("clear custom fields: %w", err)
	}
	for i, f := range fields {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO custom_field (position, field_key, name, field_type, show_on_signup) VALUES (?, ?, ?, ?, ?)`,
			i, f.Key, f.Name, f.Type, boolToInt(f.ShowOnSignup)); err != nil {
			return fmt.Errorf("insert custom field %q: %w", f.Key, err)
		}
	}
	return tx.Commit()
}

// Delete removes every field with key.
// PRE: key is non-empty
// POST: No field with key remains; order of the rest is unchanged
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM custom_field WHERE field_key = ?`, key)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
