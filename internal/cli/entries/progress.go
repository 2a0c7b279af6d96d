package entries

import (
	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/motivation"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	h, err := ctx.History().Load()
	if err != nil {
		return err
	}

	p := ctx.GetEngine().ComputeProgress(h)
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	ctx.Println(motivation.PhaseBanner(p.Phase))
	ctx.Println()
	ctx.Printf("Level %d  ·  %d XP total  ·  %d entries\n", p.Level, p.XPTotal, p.Entries)
	ctx.Println(bar.ViewAs(float64(p.ProgressPercent) / 100))
	ctx.Printf("%d XP to level %d\n", p.XPToNext, p.Level+1)

	if settings, err := ctx.Settings(); err == nil && settings.ShowMotivation {
		ctx.Println()
		ctx.Println(ctx.GetPicker().Motivation())
	}
	return nil
}
