package engine

import (
	"github.com/julianstephens/cortisol/internal/models"
)

// State is everything a session mutates: the working draft and the history
type State struct {
	Draft   models.Draft
	History models.History
}

// NewState starts a session over an already loaded history
func (e *Engine) NewState(history models.History) State {
	if history == nil {
		history = models.History{}
	}
	return State{Draft: e.NewDraft(), History: history}
}

// Action is a single state transition
type Action interface {
	apply(e *Engine, s State) (State, bool)
}

type SetRating struct {
	Field models.RatingField
	Value int
}

type ToggleHabit struct {
	Index int
}

type SetNote struct {
	Text string
}

// SetDraft replaces the whole draft, as a completed form does
type SetDraft struct {
	Draft models.Draft
}

type ResetDraft struct{}

type SubmitDraft struct {
	Today string
}

type ClearTodayAction struct {
	Today string
}

type ClearAllAction struct{}

// Reduce applies an action and reports whether the history changed.
// The caller persists the history when it did.
func (e *Engine) Reduce(s State, a Action) (State, bool) {
	if a == nil {
		return s, false
	}
	return a.apply(e, s)
}

func (a SetRating) apply(_ *Engine, s State) (State, bool) {
	d, err := s.Draft.WithRating(a.Field, a.Value)
	if err != nil {
		return s, false
	}
	s.Draft = d
	return s, false
}

func (a ToggleHabit) apply(e *Engine, s State) (State, bool) {
	if a.Index < 0 || a.Index >= e.HabitCount() {
		return s, false
	}
	d := s.Draft.NormalizeHabits(e.HabitCount())
	d.Habits[a.Index] = !d.Habits[a.Index]
	s.Draft = d
	return s, false
}

func (a SetNote) apply(_ *Engine, s State) (State, bool) {
	d := s.Draft.Clone()
	d.Note = a.Text
	s.Draft = d
	return s, false
}

func (a SetDraft) apply(e *Engine, s State) (State, bool) {
	s.Draft = a.Draft.Clamp().NormalizeHabits(e.HabitCount())
	return s, false
}

func (ResetDraft) apply(e *Engine, s State) (State, bool) {
	s.Draft = e.NewDraft()
	return s, false
}

func (a SubmitDraft) apply(e *Engine, s State) (State, bool) {
	history, draft, ok := e.Submit(s.History, s.Draft, a.Today)
	if !ok {
		return s, false
	}
	return State{Draft: draft, History: history}, true
}

func (a ClearTodayAction) apply(_ *Engine, s State) (State, bool) {
	if !s.History.Has(a.Today) {
		return s, false
	}
	s.History = ClearToday(s.History, a.Today)
	return s, true
}

func (ClearAllAction) apply(_ *Engine, s State) (State, bool) {
	if len(s.History) == 0 {
		return s, false
	}
	s.History = ClearAll(s.History)
	return s, true
}
