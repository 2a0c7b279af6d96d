// Package engine implements the daily entry scoring and progression model.
//
// Every operation is pure: it takes the current history and draft and returns
// new values. Persisting the result is left to the caller.
package engine

import (
	"github.com/google/uuid"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/models"
)

type Engine struct {
	Rules  Rules
	Habits []constants.HabitDefinition
	// NewID generates entry identifiers. Nil leaves entries without an ID.
	NewID func() string
}

// New returns an engine over the given habit definitions using the default rules
func New(habits []constants.HabitDefinition) *Engine {
	return &Engine{
		Rules:  DefaultRules(),
		Habits: habits,
		NewID:  uuid.NewString,
	}
}

// Default returns an engine over the built-in habit list
func Default() *Engine {
	return New(constants.DefaultHabits)
}

// HabitCount returns N, the number of habit definitions
func (e *Engine) HabitCount() int {
	return len(e.Habits)
}

// NewDraft returns a fresh draft sized for the engine's habits
func (e *Engine) NewDraft() models.Draft {
	return models.NewDraft(e.HabitCount())
}

// ComputeDerived scores a draft. Ratings are clamped and the habit vector is
// aligned to the habit definitions before scoring, so a stored entry with a
// short or long habit vector scores against the same N as a new submission.
func (e *Engine) ComputeDerived(draft models.Draft) models.Derived {
	n := e.HabitCount()
	d := draft.Clamp().NormalizeHabits(n)
	r := e.Rules

	score := d.CompletedHabits()
	if d.Mood >= r.PositiveBonusMin {
		score++
	}
	if d.Energy >= r.PositiveBonusMin {
		score++
	}
	if d.Anxiety <= r.NegativeBonusMax {
		score++
	}
	if d.Fatigue <= r.NegativeBonusMax {
		score++
	}

	recovery := (d.Mood + d.Energy +
		(constants.RecoveryInvertBase - d.Anxiety) +
		(constants.RecoveryInvertBase - d.Fatigue)) * constants.RecoveryMultiplier

	return models.Derived{
		Score:    score,
		XP:       r.XPFor(score, MaxScore(n)),
		Recovery: recovery,
	}
}

// Submit turns the draft into today's entry.
// If the history already holds an entry for today the inputs are returned
// unchanged and submitted is false.
func (e *Engine) Submit(history models.History, draft models.Draft, today string) (models.History, models.Draft, bool) {
	if history.Has(today) {
		return history, draft, false
	}

	d := draft.Clamp().NormalizeHabits(e.HabitCount())
	derived := e.ComputeDerived(d)

	var id string
	if e.NewID != nil {
		id = e.NewID()
	}

	next := make(models.History, 0, len(history)+1)
	next = append(next, history...)
	next = append(next, models.NewEntry(id, today, d, derived))

	return next, e.NewDraft(), true
}

// ComputeProgress summarizes the history. The result does not depend on entry order.
func (e *Engine) ComputeProgress(history models.History) models.Progress {
	return e.Rules.Progress(history)
}

// Progress computes XP totals, level and phase for a history
func (r Rules) Progress(history models.History) models.Progress {
	total := 0
	for _, entry := range history {
		total += entry.XP
	}

	band := r.levelBand()
	into := total % band

	return models.Progress{
		XPTotal:         total,
		Level:           total / band,
		XPToNext:        band - into,
		ProgressPercent: into * 100 / band,
		Entries:         len(history),
		Phase:           r.PhaseFor(len(history)),
	}
}

// ClearToday removes every entry dated today
func ClearToday(history models.History, today string) models.History {
	out := make(models.History, 0, len(history))
	for _, entry := range history {
		if entry.Date != today {
			out = append(out, entry)
		}
	}
	return out
}

// ClearAll returns an empty history
func ClearAll(models.History) models.History {
	return models.History{}
}
