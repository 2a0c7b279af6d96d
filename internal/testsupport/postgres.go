//go:build integration

package testsupport

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:16-alpine"

// PostgresURL returns a connection string for a disposable PostgreSQL database.
// POSTGRES_TEST_URL is used when set; otherwise a container is started and
// terminated when the test finishes.
func PostgresURL(t *testing.T) string {
	t.Helper()
	if connStr := os.Getenv("POSTGRES_TEST_URL"); connStr != "" {
		return connStr
	}

	ctx := context.Background()
	pg, err := postgrescontainer.Run(ctx, postgresImage,
		postgrescontainer.WithDatabase("cortisol"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, waitForDatabase(connStr))
	return connStr
}

// OpenPostgres opens a pinged *sql.DB closed at test cleanup
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", PostgresURL(t))
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { db.Close() })
	return db
}

func waitForDatabase(connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		db, err := sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
			db.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
