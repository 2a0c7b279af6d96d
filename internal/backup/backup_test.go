package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/cortisol/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cortisol.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create kv table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv VALUES ('cortisol_entries', '[{"humeur":4}]', '2024-03-01T00:00:00Z')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func readValue(t *testing.T, dbPath string) string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var value string
	if err := db.QueryRow("SELECT value FROM kv WHERE key = 'cortisol_entries'").Scan(&value); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return value
}

func writeValue(t *testing.T, dbPath, value string) {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("UPDATE kv SET value = ? WHERE key = 'cortisol_entries'", value); err != nil {
		t.Fatalf("failed to update: %v", err)
	}
}

func steppedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), "backups") {
		t.Errorf("backup written outside backup dir: %s", backupPath)
	}
	if got := readValue(t, backupPath); got != `[{"humeur":4}]` {
		t.Errorf("backup value = %q", got)
	}
}

func TestCreateBackup_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestCreateBackup_SameSecondGetsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("first backup failed: %v", err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("second backup failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct backup paths")
	}
	if filepath.Base(second) != "cortisol-20240301-093000-1.db" {
		t.Errorf("unexpected second name %s", filepath.Base(second))
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "cortisol-garbage.db", "cortisol-20240301-093000.json", "cortisol-20240301-093000-x.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppedClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local))

	var last string
	for i := 0; i < constants.MaxBackups+3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("backup %d failed: %v", i, err)
		}
		last = path
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	if backups[0].Path != last {
		t.Errorf("newest backup should be first, got %s", backups[0].Path)
	}
	oldest := fmt.Sprintf("cortisol-%s.db", time.Date(2024, 1, 1, 8, 3, 0, 0, time.Local).Format(timestampFormat))
	if filepath.Base(backups[len(backups)-1].Path) != oldest {
		t.Errorf("oldest kept backup = %s, want %s", filepath.Base(backups[len(backups)-1].Path), oldest)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppedClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	writeValue(t, dbPath, `[]`)

	preRestore, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if preRestore == "" {
		t.Fatal("expected a pre-restore snapshot")
	}
	if got := readValue(t, dbPath); got != `[{"humeur":4}]` {
		t.Errorf("restored value = %q", got)
	}
	if got := readValue(t, preRestore); got != `[]` {
		t.Errorf("pre-restore snapshot value = %q", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackup_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("definitely not sqlite, just some text padding it out"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(junk); err == nil {
		t.Error("expected error for corrupted backup")
	}
	if got := readValue(t, dbPath); got != `[{"humeur":4}]` {
		t.Errorf("database modified by failed restore: %q", got)
	}
}

func TestJSONBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cortisol.json")
	original := []byte(`{"version":1,"values":{"cortisol_entries":"[]"}}`)
	if err := os.WriteFile(path, original, 0600); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(path)
	mgr.now = steppedClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local))
	if mgr.Kind() != KindJSON {
		t.Fatalf("expected JSON kind")
	}

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected .json backup, got %s", backupPath)
	}

	if err := os.WriteFile(path, []byte(`{"version":1,"values":{}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(original) {
		t.Errorf("restored content = %s", got)
	}
}

func TestSupported(t *testing.T) {
	tests := map[string]bool{
		"/home/me/.config/cortisol/cortisol.db":   true,
		"/home/me/.config/cortisol/cortisol.json": true,
		"postgresql":                              false,
		"postgres":                                false,
		"host=localhost dbname=cortisol":          false,
		"memory":                                  false,
		"diskv:///tmp/kv":                         false,
		"":                                        false,
	}
	for path, want := range tests {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v, want %v", path, got, want)
		}
	}
}
