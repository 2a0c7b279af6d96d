package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/cortisol/internal/backup"
	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source store (path, diskv:// directory or connection string) to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized cortisol storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

// reset removes a single-file store, or empties any other one
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if c.Source != "" && samePath(c.Source, dbPath) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
	}

	if backup.Supported(dbPath) {
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
		return nil
	}

	if err := ctx.Store.Load(); err != nil {
		if errors.Is(err, storage.ErrNotInitialized) {
			return nil
		}
		return fmt.Errorf("failed to load existing storage: %w", err)
	}
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list existing keys: %w", err)
	}
	for _, key := range keys {
		if err := ctx.Store.Delete(key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to delete key %s: %w", key, err)
		}
	}
	ctx.Printf("Deleted %d existing keys from: %s\n", len(keys), dbPath)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, source string) error {
	sourceStore, err := cli.OpenStore(source)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer sourceStore.Close()

	keys, err := sourceStore.Keys()
	if err != nil {
		return fmt.Errorf("failed to list source keys: %w", err)
	}

	for _, key := range keys {
		value, err := sourceStore.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := ctx.Store.Set(key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		ctx.Printf("  Copied %s\n", key)
	}
	ctx.Printf("  Migrated %d keys\n", len(keys))
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
