package audit

import (
	"context"
	"fmt"
	"time"

	"agegate/internal/adapters/storage"
	domain "agegate/internal/domain/audit"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements the audit Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an audit event.
// PRE: event is valid
// POST: Event is persisted
func (s *SQLiteStore) Save(ctx context.Context, event domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_event (id, timestamp, action, actor, resource_type, resource_id, description, ip_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Timestamp.UTC().Format(dateLayout), string(event.Action), event.Actor,
		event.ResourceType, event.ResourceID, event.Description, event.IPAddress)
	return err
}

// List returns audit events with optional filtering.
// PRE: limit > 0
// POST: Returns events ordered by timestamp desc, newest insert first on ties
func (s *SQLiteStore) List(ctx context.Context, filter Filter, limit int) ([]domain.Event, error) {
	query := `SELECT id, timestamp, action, actor, resource_type, resource_id, description, ip_address FROM audit_event WHERE 1=1`
	args := []any{}

	if filter.Action != nil {
		query += " AND action = ?"
		args = append(args, string(*filter.Action))
	}
	if filter.Actor != nil {
		query += " AND actor = ?"
		args = append(args, *filter.Actor)
	}
	if filter.ResourceType != nil {
		query += " AND resource_type = ?"
		args = append(args, *filter.ResourceType)
	}

	query += " ORDER BY timestamp DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var timestamp string
		if err := rows.Scan(&e.ID, &timestamp, &e.Action, &e.Actor, &e.ResourceType, &e.ResourceID, &e.Description, &e.IPAddress); err != nil {
			return nil, err
		}
		e.Timestamp, err = time.Parse(dateLayout, timestamp)
		if err != nil {
			return nil, fmt.Errorf("audit event %s timestamp: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
