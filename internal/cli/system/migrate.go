package system

import (
	"fmt"

	"github.com/julianstephens/cortisol/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	migrator, ok := ctx.Store.(cli.Migrator)
	if !ok {
		ctx.Printf("No schema migrations for this storage backend (%s).\n", ctx.Store.GetConfigPath())
		return nil
	}

	count, err := migrator.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
