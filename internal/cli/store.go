package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/keyring"
	"github.com/julianstephens/cortisol/internal/storage"
	"github.com/julianstephens/cortisol/internal/storage/diskv"
	"github.com/julianstephens/cortisol/internal/storage/postgres"
	"github.com/julianstephens/cortisol/internal/storage/sqlite"
)

const (
	// PostgresKeyword selects PostgreSQL with the connection string taken from
	// the environment or the OS keyring
	PostgresKeyword = "postgres"
	// MemoryKeyword selects a throwaway in-memory store
	MemoryKeyword = "memory"
)

// ErrNoConnectionString is returned when the postgres keyword is used without stored credentials
var ErrNoConnectionString = errors.New("no PostgreSQL connection string found: set " + constants.EnvDBConnection + " or run 'cortisol keyring set'")

// getenvFunc and keyringFunc are swapped in tests
var (
	getenvFunc  = os.Getenv
	keyringFunc = keyring.GetConnectionString
)

// OpenStore selects a storage backend from the --config value:
// "memory", "postgres" (credentials from env or keyring), a postgres URL or DSN,
// a "diskv://" directory, a ".json" file, or otherwise a SQLite file.
func OpenStore(config string) (storage.Provider, error) {
	config = strings.TrimSpace(config)

	switch {
	case config == MemoryKeyword:
		return storage.NewMemoryStore(), nil

	case config == PostgresKeyword || config == "postgresql":
		connStr, err := resolveConnString()
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil

	case postgres.IsConnString(config):
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store the full connection string with 'cortisol keyring set', export %s, or use .pgpass", err, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(config), nil

	case strings.HasPrefix(config, diskv.Prefix):
		path, err := homedir.Expand(strings.TrimPrefix(config, diskv.Prefix))
		if err != nil {
			return nil, fmt.Errorf("failed to expand path: %w", err)
		}
		return diskv.New(path), nil
	}

	path, err := homedir.Expand(config)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

func resolveConnString() (string, error) {
	if connStr := strings.TrimSpace(getenvFunc(constants.EnvDBConnection)); connStr != "" {
		return connStr, nil
	}
	connStr, err := keyringFunc()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoConnectionString
	}
	if err != nil {
		return "", err
	}
	return connStr, nil
}

// ConfigDir returns the directory holding logs, backups and the session lock.
// File-backed stores use their own directory, everything else the default one.
func ConfigDir(config string) string {
	config = strings.TrimSpace(config)
	if strings.HasPrefix(config, diskv.Prefix) {
		if path, err := homedir.Expand(strings.TrimPrefix(config, diskv.Prefix)); err == nil {
			return filepath.Dir(filepath.Clean(path))
		}
	} else if config != "" && config != MemoryKeyword && config != PostgresKeyword &&
		config != "postgresql" && !postgres.IsConnString(config) {
		if path, err := homedir.Expand(config); err == nil {
			return filepath.Dir(path)
		}
	}

	dir, err := homedir.Expand(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppName)
	}
	return dir
}
