package entries

import (
	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/utils"
)

type ClearCmd struct {
	Today ClearTodayCmd `cmd:"" help:"Delete today's entry."`
	All   ClearAllCmd   `cmd:"" help:"Delete the whole history."`
}

type ClearTodayCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearTodayCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	return runClear(ctx, c.Yes, engine.ClearTodayAction{Today: today},
		"Delete today's entry?",
		"The entry for "+utils.FormatDisplayDate(today)+" and its XP will be removed.")
}

type ClearAllCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearAllCmd) Run(ctx *cli.Context) error {
	return runClear(ctx, c.Yes, engine.ClearAllAction{},
		"Delete the whole history?",
		"Every entry, all XP and levels will be lost. This cannot be undone.")
}

func runClear(ctx *cli.Context, yes bool, action engine.Action, title, description string) error {
	l, err := ctx.AcquireLock()
	if err != nil {
		return err
	}
	defer l.Release()

	repo := ctx.History()
	h, err := repo.Load()
	if err != nil {
		return err
	}

	e := ctx.GetEngine()
	state, changed := e.Reduce(e.NewState(h), action)
	if !changed {
		ctx.Println("Nothing to delete.")
		return nil
	}

	if !yes {
		ok, err := confirmFunc(title, description)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := repo.Save(state.History); err != nil {
		return err
	}
	removed := len(h) - len(state.History)
	logger.Info("History cleared", "removed", removed)
	ctx.Printf("✓ Deleted %d entr%s.\n", removed, plural(removed, "y", "ies"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
