package entries

import (
	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/models"
)

type LogCmd struct {
	Mood    int      `help:"Mood, 1 (low) to 5 (great)." default:"3"`
	Energy  int      `help:"Energy, 1 (drained) to 5 (full)." default:"3"`
	Anxiety int      `help:"Anxiety, 1 (calm) to 5 (severe)." default:"3"`
	Fatigue int      `help:"Fatigue, 1 (rested) to 5 (exhausted)." default:"3"`
	Habit   []string `short:"H" help:"Completed habit, by number or name. Repeatable."`
	Note    string   `help:"Free-text note for the day."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	e := ctx.GetEngine()

	done := make(map[int]bool)
	for _, ref := range c.Habit {
		idx, err := ResolveHabit(e.Habits, ref)
		if err != nil {
			return err
		}
		done[idx] = true
	}

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
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	actions := []engine.Action{
		engine.SetRating{Field: models.RatingMood, Value: c.Mood},
		engine.SetRating{Field: models.RatingEnergy, Value: c.Energy},
		engine.SetRating{Field: models.RatingAnxiety, Value: c.Anxiety},
		engine.SetRating{Field: models.RatingFatigue, Value: c.Fatigue},
		engine.SetNote{Text: c.Note},
	}
	for idx := range done {
		actions = append(actions, engine.ToggleHabit{Index: idx})
	}

	state := e.NewState(h)
	for _, a := range actions {
		state, _ = e.Reduce(state, a)
	}
	state, submitted := e.Reduce(state, engine.SubmitDraft{Today: today})
	if !submitted {
		existing, _ := h.Find(today)
		ctx.Printf("Already logged today (%s): score %d, +%d XP. Use 'cortisol clear today' to redo it.\n",
			today, existing.Score, existing.XP)
		return nil
	}

	if err := repo.Save(state.History); err != nil {
		return err
	}

	entry, _ := state.History.Last()
	logger.Info("Entry logged", "date", entry.Date, "score", entry.Score, "xp", entry.XP)

	ctx.Printf("✓ Logged %s\n", entry.Date)
	ctx.Printf("  Score:    %d/%d\n", entry.Score, engine.MaxScore(e.HabitCount()))
	ctx.Printf("  XP:       +%d\n", entry.XP)
	ctx.Printf("  Recovery: %d%%\n", entry.Recovery)

	if settings, err := ctx.Settings(); err == nil && settings.ShowMotivation {
		ctx.Println()
		ctx.Println(ctx.GetPicker().Encouragement())
	}

	progress := e.ComputeProgress(state.History)
	ctx.Printf("\nLevel %d, %d XP to next level\n", progress.Level, progress.XPToNext)
	return nil
}
