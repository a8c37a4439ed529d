package membership

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"agegate/internal/adapters/storage"
	domain "agegate/internal/domain/membership"
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

func TestSQLiteStore_SaveGetList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, m := range []domain.Membership{{ID: "2", Name: "Silver"}, {ID: "1", Name: "Gold"}} {
		if err := store.Save(ctx, m); err != nil {
			t.Fatalf("Save %s: %v", m.ID, err)
		}
	}

	got, err := store.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Gold" {
		t.Errorf("Name = %q, want Gold", got.Name)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []domain.Membership{{ID: "1", Name: "Gold"}, {ID: "2", Name: "Silver"}}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_SaveRenames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, domain.Membership{ID: "1", Name: "Gold"})
	if err := store.Save(ctx, domain.Membership{ID: "1", Name: "Platinum"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Platinum" {
		t.Errorf("Name = %q, want Platinum", got.Name)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, domain.Membership{ID: "1", Name: "Gold"})
	if err := store.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("after delete err = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "1"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
