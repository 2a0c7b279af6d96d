package entries

import (
	"strings"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/utils"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	h, err := ctx.History().Load()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	entry, ok := h.Find(today)
	if !ok {
		ctx.Printf("Nothing logged yet for %s.\n", utils.FormatDisplayDate(today))
		ctx.Println("Use 'cortisol log' or the TUI to record today.")
		return nil
	}

	e := ctx.GetEngine()
	ctx.Printf("%s\n\n", utils.FormatDisplayDate(entry.Date))
	for _, field := range models.RatingFields {
		ctx.Printf("  %-8s %d/5\n", field.Label()+":", entry.Draft().Rating(field))
	}
	ctx.Println()
	for i, def := range e.Habits {
		mark := "[ ]"
		if i < len(entry.Habits) && entry.Habits[i] {
			mark = "[x]"
		}
		ctx.Printf("  %s %s\n", mark, def.Name)
	}
	if strings.TrimSpace(entry.Note) != "" {
		ctx.Printf("\n  Note: %s\n", entry.Note)
	}
	ctx.Printf("\n  Score %d/%d  ·  +%d XP  ·  Recovery %d%%\n",
		entry.Score, engine.MaxScore(e.HabitCount()), entry.XP, entry.Recovery)
	return nil
}
