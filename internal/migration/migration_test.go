package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestMigrations(migrations map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range migrations {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestGetCurrentVersion(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}), DialectSQLite)

	version, err := runner.GetCurrentVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(ctx, 5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := NewRunner(setupTestDB(t), setupTestMigrations(map[string]string{
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"README.md":       "ignored",
	}), DialectSQLite)

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	wantNames := []string{"init", "update", "another"}
	for i, m := range migrations {
		if m.Version != i+1 || m.Name != wantNames[i] {
			t.Errorf("migration %d: got version %d name %q", i, m.Version, m.Name)
		}
	}
}

func TestReadMigrationFilesErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"bad filename", map[string]string{"init.sql": ""}, "invalid migration filename"},
		{"non-numeric version", map[string]string{"abc_init.sql": ""}, "invalid version number"},
		{"zero version", map[string]string{"000_init.sql": ""}, "at least 1"},
		{"duplicate version", map[string]string{"001_a.sql": "", "1_b.sql": ""}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), setupTestMigrations(tt.files), DialectSQLite)
			_, err := runner.ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ReadMigrationFiles() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_init.sql":  "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"002_posts.sql": "CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER);",
	}), DialectSQLite)

	var logs []string
	count, err := runner.ApplyMigrations(ctx, func(msg string) { logs = append(logs, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	for _, table := range []string{"users", "posts"} {
		var name string
		if err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name); err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}

	// Second run is a no-op.
	count, err = runner.ApplyMigrations(ctx, nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", count)
	}

	pending, err := runner.Pending(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if pending != 0 {
		t.Errorf("Pending() = %d, want 0", pending)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_init.sql":   "CREATE TABLE users (id INTEGER PRIMARY KEY);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER; -- syntax error",
	}), DialectSQLite)

	count, err := runner.ApplyMigrations(ctx, nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", count)
	}

	version, err := runner.GetCurrentVersion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
}

func TestValidateVersion(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(setupTestDB(t), setupTestMigrations(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER);",
	}), DialectSQLite)

	if err := runner.ValidateVersion(ctx); err != nil {
		t.Errorf("ValidateVersion on fresh db: %v", err)
	}

	if err := runner.SetVersion(ctx, 9); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(ctx); err == nil {
		t.Error("expected error when database is newer than the application")
	}
	if _, err := runner.ApplyMigrations(ctx, nil); err == nil {
		t.Error("ApplyMigrations should refuse a newer database")
	}
}
