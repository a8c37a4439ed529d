package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"agegate/internal/adapters/storage"
	domain "agegate/internal/domain/audit"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestSQLiteStore_SaveAndListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	older := domain.NewEvent("a1", t0, "admin", domain.ActionUpdate).
		WithResource(domain.ResourceSettings, "agegate_options").
		WithDescription("2 notices")
	newer := domain.NewEvent("a2", t0.Add(time.Minute), "admin", domain.ActionCreate).
		WithResource(domain.ResourceMembership, "7").
		WithIPAddress("10.0.0.1")
	for _, e := range []domain.Event{older, newer} {
		if err := store.Save(ctx, e); err != nil {
			t.Fatalf("Save(%s): %v", e.ID, err)
		}
	}

	got, err := store.List(ctx, Filter{}, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]domain.Event{newer, older}, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_ListFiltersAndLimits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	events := []domain.Event{
		domain.NewEvent("a1", t0, "alice", domain.ActionUpdate).WithResource(domain.ResourceSettings, "opt"),
		domain.NewEvent("a2", t0.Add(time.Second), "bob", domain.ActionDelete).WithResource(domain.ResourceCustomField, "dob"),
		domain.NewEvent("a3", t0.Add(2*time.Second), "alice", domain.ActionCreate).WithResource(domain.ResourceMembership, "1"),
	}
	for _, e := range events {
		if err := store.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	alice := "alice"
	got, err := store.List(ctx, Filter{Actor: &alice}, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a3" || got[1].ID != "a1" {
		t.Errorf("actor filter = %+v, want a3, a1", got)
	}

	fieldType := domain.ResourceCustomField
	got, err = store.List(ctx, Filter{ResourceType: &fieldType}, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a2" {
		t.Errorf("resource filter = %+v, want a2", got)
	}

	got, err = store.List(ctx, Filter{}, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a3" {
		t.Errorf("limit = %+v, want only a3", got)
	}
}
