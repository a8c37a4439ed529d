package membership

import (
	"context"
	"database/sql"
	"errors"

	"agegate/internal/adapters/storage"
	domain "agegate/internal/domain/membership"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a membership by ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Membership, error) {
	var m domain.Membership
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM membership WHERE id = ?`, id).Scan(&m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Membership{}, domain.ErrNotFound
	}
	return m, err
}

// List returns every mirrored membership.
// POST: Ordered by name, then id
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Membership, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM membership ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Save inserts or updates a membership.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, m domain.Membership) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO membership (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name`,
		m.ID, m.Name)
	return err
}

// Delete removes a membership by ID.
// PRE: id is non-empty
// POST: Entity with given id is removed; deleting a missing id is not an error
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM membership WHERE id = ?`, id)
	return err
}
