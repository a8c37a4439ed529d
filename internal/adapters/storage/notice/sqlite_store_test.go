package notice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"agegate/internal/adapters/storage"
	domain "agegate/internal/domain/notice"
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

var created = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSQLiteStore_ReplaceAllThenList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []domain.Notice{
		{ID: "n1", OptionName: "opt", Code: domain.CodeMinimumAge, Message: "empty", CreatedAt: created},
	}
	if err := store.ReplaceAll(ctx, "opt", first); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	second := []domain.Notice{
		{ID: "n2", OptionName: "opt", Code: domain.CodeMemberships, Message: "none", CreatedAt: created},
		{ID: "n3", OptionName: "opt", Code: domain.CodeDateFieldUnknown, Message: "unknown", CreatedAt: created},
	}
	if err := store.ReplaceAll(ctx, "opt", second); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	got, err := store.List(ctx, "opt")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_ReplaceAllEmptyClears(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.ReplaceAll(ctx, "opt", []domain.Notice{
		{ID: "n1", OptionName: "opt", Code: domain.CodeMinimumAge, Message: "empty", CreatedAt: created},
	})
	if err := store.ReplaceAll(ctx, "opt", nil); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	got, err := store.List(ctx, "opt")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List = %v, want empty", got)
	}
}

func TestSQLiteStore_OptionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.ReplaceAll(ctx, "a", []domain.Notice{{ID: "n1", OptionName: "a", Code: "x", Message: "m", CreatedAt: created}})
	store.ReplaceAll(ctx, "b", nil)

	got, err := store.List(ctx, "a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len(List(a)) = %d, want 1", len(got))
	}
}

func TestSQLiteStore_ReplaceAllRejectsForeignNotice(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.ReplaceAll(ctx, "a", []domain.Notice{{ID: "n1", OptionName: "b", Code: "x", Message: "m", CreatedAt: created}})
	if err == nil {
		t.Fatal("ReplaceAll succeeded, want error")
	}
}
