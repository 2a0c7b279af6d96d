package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	l, err := ctx.AcquireLock()
	if err != nil {
		return err
	}
	defer l.Release()

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	model, err := tui.New(tui.Config{
		Engine:         ctx.GetEngine(),
		Repo:           ctx.History(),
		Today:          ctx.Today,
		Picker:         ctx.GetPicker(),
		ShowMotivation: settings.ShowMotivation,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
