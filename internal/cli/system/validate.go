package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Drop duplicate days and recompute inconsistent scores."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	repo := ctx.History()
	h, err := repo.Load()
	if err != nil {
		return err
	}

	validator := validation.New(ctx.GetEngine())
	result := validator.ValidateHistory(h)
	ctx.Println(strings.TrimSuffix(result.FormatReport(), "\n"))

	if !result.HasConflicts() || !c.Fix {
		return nil
	}

	l, err := ctx.AcquireLock()
	if err != nil {
		return err
	}
	defer l.Release()

	fixed, actions := validation.AutoFixDuplicateDates(result.Conflicts, h)
	// positions shift once duplicates are gone
	fixed, derivedActions := validator.AutoFixDerived(validator.ValidateHistory(fixed).Conflicts, fixed)
	actions = append(actions, derivedActions...)

	if len(actions) == 0 {
		ctx.Println("\nNothing could be fixed automatically.")
		return nil
	}

	if err := repo.Save(fixed); err != nil {
		return fmt.Errorf("failed to save fixed history: %w", err)
	}

	ctx.Println("\nApplied fixes:")
	for _, a := range actions {
		ctx.Printf("- %s\n", a.Action)
	}

	remaining := validator.ValidateHistory(fixed)
	if remaining.HasConflicts() {
		ctx.Printf("\n%d problem(s) need manual attention.\n", len(remaining.Conflicts))
	}
	return nil
}
