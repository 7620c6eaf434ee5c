package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "habitual.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	habits, err := store.Load(ctx)
	if err != nil || len(habits) != 0 {
		t.Fatalf("Load() on fresh store = %v, %v", habits, err)
	}

	h, err := models.NewHabit(models.HabitDraft{Name: "Meditate", CompletionsPerDay: "3"}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	h.Completions["2024-02-29"] = 3

	if err := store.Save(ctx, []models.Habit{h}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	h.Name = "Meditate daily"
	if err := store.Save(ctx, []models.Habit{h}); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Meditate daily" || got[0].Completions["2024-02-29"] != 3 {
		t.Errorf("Load() = %+v", got)
	}

	var rows int
	if err := store.GetDB().QueryRow("SELECT count(*) FROM kv").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("kv rows = %d, want 1", rows)
	}
}

func TestStore_CorruptSlot(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.GetDB().Exec("INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)",
		constants.HabitsStorageKey, "not json", "2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatal(err)
	}

	habits, err := store.Load(context.Background())
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("Load() error = %v, want %v", err, storage.ErrCorrupt)
	}
	if len(habits) != 0 {
		t.Errorf("Load() = %v, want empty", habits)
	}
}

func TestStore_OpenRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Open(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Open() error = %v, want %v", err, storage.ErrNotInitialized)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want %v", err, storage.ErrNotInitialized)
	}
}

func TestStore_ReopenExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatal(err)
	}
	if err := first.Save(context.Background(), []models.Habit{}); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second := NewStore(path)
	defer second.Close()
	if err := second.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if second.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", second.GetConfigPath(), path)
	}
}

func TestStore_OpenRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := first.GetDB().Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second := NewStore(path)
	defer second.Close()
	for i := 0; i < 2; i++ {
		if err := second.Open(); err == nil || !strings.Contains(err.Error(), "newer than supported") {
			t.Fatalf("Open() attempt %d error = %v, want schema version error", i+1, err)
		}
	}
	if _, err := second.Load(context.Background()); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() after failed Open error = %v, want %v", err, storage.ErrNotInitialized)
	}
}
