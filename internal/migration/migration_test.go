package migration

import (
	"database/sql"
	"errors"
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

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func newTestRunner(t *testing.T, db *sql.DB, fsys fstest.MapFS) *Runner {
	t.Helper()
	runner, err := NewRunner(db, fsys, DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	return runner
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count == 1
}

func TestNewRunnerRejectsUnknownDriver(t *testing.T) {
	if _, err := NewRunner(nil, fstest.MapFS{}, "mysql"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := newTestRunner(t, db, migrationFS(map[string]string{
		"001_kv.sql": "CREATE TABLE kv (key TEXT PRIMARY KEY);",
	}))

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := newTestRunner(t, setupTestDB(t), migrationFS(map[string]string{
		"003_settings.sql": "CREATE TABLE settings (id INTEGER);",
		"001_init.sql":     "CREATE TABLE kv (key TEXT);",
		"002_stamp.sql":    "ALTER TABLE kv ADD COLUMN updated_at TEXT;",
		"README.md":        "ignored",
	}))

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	want := []struct {
		version int
		name    string
	}{{1, "init"}, {2, "stamp"}, {3, "settings"}}
	if len(migrations) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(migrations))
	}
	for i, w := range want {
		if migrations[i].Version != w.version || migrations[i].Name != w.name {
			t.Errorf("migration %d: expected %d/%s, got %d/%s", i, w.version, w.name, migrations[i].Version, migrations[i].Name)
		}
	}
}

func TestReadMigrationFilesErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "missing separator",
			files:   map[string]string{"001init.sql": "SELECT 1;"},
			wantErr: "invalid migration filename format",
		},
		{
			name:    "version zero",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: "version must be at least 1",
		},
		{
			name:    "non numeric version",
			files:   map[string]string{"abc_init.sql": "SELECT 1;"},
			wantErr: "invalid version number",
		},
		{
			name: "duplicate version",
			files: map[string]string{
				"001_init.sql":  "SELECT 1;",
				"001_other.sql": "SELECT 2;",
			},
			wantErr: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newTestRunner(t, setupTestDB(t), migrationFS(tt.files))
			_, err := runner.ReadMigrationFiles()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyMigrationsFromScratch(t *testing.T) {
	db := setupTestDB(t)
	runner := newTestRunner(t, db, migrationFS(map[string]string{
		"001_kv.sql":      "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);",
		"002_history.sql": "CREATE TABLE kv_history (key TEXT, value TEXT);",
	}))

	var logged []string
	count, err := runner.ApplyMigrations(func(msg string) { logged = append(logged, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
	if !tableExists(t, db, "kv") || !tableExists(t, db, "kv_history") {
		t.Error("expected both tables to be created")
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := setupTestDB(t)
	fsys := migrationFS(map[string]string{
		"001_kv.sql": "CREATE TABLE kv (key TEXT PRIMARY KEY);",
	})
	runner := newTestRunner(t, db, fsys)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (1st) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}

	fsys["002_stamp.sql"] = &fstest.MapFile{Data: []byte("ALTER TABLE kv ADD COLUMN updated_at TEXT;")}

	pending, err := runner.Pending()
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if pending != 1 {
		t.Errorf("expected 1 pending migration, got %d", pending)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (2nd) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 more migration applied, got %d", count)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (3rd) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no-op on third run, got %d", count)
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := newTestRunner(t, db, migrationFS(map[string]string{
		"001_init.sql": `
			CREATE TABLE kv (key TEXT PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}))

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}
	if tableExists(t, db, "kv") {
		t.Error("table should not exist after failed migration")
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	runner := newTestRunner(t, setupTestDB(t), migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE kv (key TEXT PRIMARY KEY);",
	}))

	if err := runner.SetVersion(10); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	if err := runner.ValidateVersion(); !errors.Is(err, ErrSchemaTooNew) {
		t.Fatalf("expected ErrSchemaTooNew from ValidateVersion, got %v", err)
	}
	if _, err := runner.ApplyMigrations(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Fatalf("expected ErrSchemaTooNew from ApplyMigrations, got %v", err)
	}
}

func TestGetLatestVersion(t *testing.T) {
	runner := newTestRunner(t, setupTestDB(t), migrationFS(map[string]string{
		"001_init.sql":   "SELECT 1;",
		"003_posts.sql":  "SELECT 1;",
		"002_update.sql": "SELECT 1;",
	}))

	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}
	if latest != 3 {
		t.Errorf("expected latest version 3, got %d", latest)
	}
}
