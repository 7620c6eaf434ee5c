package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, content := range files {
		out[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"002_add_value.sql": "ALTER TABLE kv ADD COLUMN note TEXT;",
		"001_init.sql":      "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);",
		"README.md":         "ignored",
	}), DialectSQLite)

	var messages []string
	applied, err := runner.ApplyMigrations(func(msg string) { messages = append(messages, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(messages) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	if _, err := db.Exec("INSERT INTO kv (key, value, note) VALUES ('a', 'b', 'c')"); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}

	// second run is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil || applied != 0 {
		t.Errorf("re-run applied = %d, err = %v", applied, err)
	}
}

func TestApplyMigrations_FailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":   "CREATE TABLE kv (key TEXT PRIMARY KEY);",
		"002_broken.sql": "ALTER TABLE missing ADD COLUMN x TEXT;",
	}), DialectSQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if version, _ := runner.GetCurrentVersion(); version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}

func TestReadMigrationFiles_Invalid(t *testing.T) {
	db := setupTestDB(t)
	tests := map[string]map[string]string{
		"no underscore": {"001.sql": "SELECT 1;"},
		"non numeric":   {"abc_init.sql": "SELECT 1;"},
		"zero version":  {"000_init.sql": "SELECT 1;"},
		"duplicate":     {"001_a.sql": "SELECT 1;", "1_b.sql": "SELECT 1;"},
	}
	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewRunner(db, migrationFS(files), DialectSQLite).ReadMigrationFiles(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE kv (key TEXT);",
	}), DialectSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() = %v", err)
	}

	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for newer schema")
	}
}
