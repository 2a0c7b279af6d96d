//go:build integration

package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cortisol/internal/testsupport"
)

func setupPostgresTestDB(t *testing.T) *sql.DB {
	db := testsupport.OpenPostgres(t)
	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS test_kv")
		db.Exec("DROP TABLE IF EXISTS test_kv_log")
	})
	return db
}

func pgTableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow("SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)", name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestPostgresSetVersion(t *testing.T) {
	db := setupPostgresTestDB(t)
	runner, err := NewRunner(db, fstest.MapFS{}, DriverPostgres)
	require.NoError(t, err)

	require.NoError(t, runner.SetVersion(1))
	version, err := runner.GetCurrentVersion()
	require.NoError(t, err)
	require.Equal(t, 1, version)

	require.NoError(t, runner.SetVersion(2))
	version, err = runner.GetCurrentVersion()
	require.NoError(t, err)
	require.Equal(t, 2, version)
}

func TestPostgresApplyMigrations(t *testing.T) {
	db := setupPostgresTestDB(t)
	fsys := migrationFS(map[string]string{
		"001_kv.sql":  "CREATE TABLE test_kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);",
		"002_log.sql": "CREATE TABLE test_kv_log (id SERIAL PRIMARY KEY, key TEXT NOT NULL REFERENCES test_kv(key));",
	})
	runner, err := NewRunner(db, fsys, DriverPostgres)
	require.NoError(t, err)

	count, err := runner.ApplyMigrations(nil)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	version, err := runner.GetCurrentVersion()
	require.NoError(t, err)
	require.Equal(t, 2, version)
	require.True(t, pgTableExists(t, db, "test_kv"))
	require.True(t, pgTableExists(t, db, "test_kv_log"))

	count, err = runner.ApplyMigrations(nil)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestPostgresMigrationRollbackOnError(t *testing.T) {
	db := setupPostgresTestDB(t)
	runner, err := NewRunner(db, migrationFS(map[string]string{
		"001_bad.sql": `
			CREATE TABLE test_kv (key TEXT PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}), DriverPostgres)
	require.NoError(t, err)

	_, err = runner.ApplyMigrations(nil)
	require.Error(t, err)

	version, err := runner.GetCurrentVersion()
	require.NoError(t, err)
	require.Zero(t, version)
	require.False(t, pgTableExists(t, db, "test_kv"))
}
