package models

import (
	"fmt"

	"github.com/julianstephens/cortisol/internal/constants"
)

// Draft is today's in-progress, not yet submitted record
type Draft struct {
	Mood    int
	Energy  int
	Anxiety int
	Fatigue int
	Habits  []bool // index-aligned with the habit definitions
	Note    string
}

// NewDraft returns a draft with every rating at the default and no habit checked
func NewDraft(habitCount int) Draft {
	if habitCount < 0 {
		habitCount = 0
	}
	return Draft{
		Mood:    constants.DefaultRating,
		Energy:  constants.DefaultRating,
		Anxiety: constants.DefaultRating,
		Fatigue: constants.DefaultRating,
		Habits:  make([]bool, habitCount),
	}
}

// Rating returns the value of the given rating field
func (d Draft) Rating(field RatingField) int {
	switch field {
	case RatingMood:
		return d.Mood
	case RatingEnergy:
		return d.Energy
	case RatingAnxiety:
		return d.Anxiety
	case RatingFatigue:
		return d.Fatigue
	}
	return 0
}

// WithRating returns a copy of the draft with field set to the clamped value
func (d Draft) WithRating(field RatingField, value int) (Draft, error) {
	out := d.Clone()
	value = ClampRating(value)
	switch field {
	case RatingMood:
		out.Mood = value
	case RatingEnergy:
		out.Energy = value
	case RatingAnxiety:
		out.Anxiety = value
	case RatingFatigue:
		out.Fatigue = value
	default:
		return d, fmt.Errorf("unknown rating field: %q", field)
	}
	return out, nil
}

// Clamp returns a copy of the draft with every rating inside [MinRating, MaxRating]
func (d Draft) Clamp() Draft {
	out := d.Clone()
	out.Mood = ClampRating(d.Mood)
	out.Energy = ClampRating(d.Energy)
	out.Anxiety = ClampRating(d.Anxiety)
	out.Fatigue = ClampRating(d.Fatigue)
	return out
}

// Clone deep-copies the draft so the habit slice is not shared
func (d Draft) Clone() Draft {
	out := d
	if d.Habits != nil {
		out.Habits = append([]bool(nil), d.Habits...)
	}
	return out
}

// CompletedHabits counts the checked habits
func (d Draft) CompletedHabits() int {
	n := 0
	for _, done := range d.Habits {
		if done {
			n++
		}
	}
	return n
}

// NormalizeHabits pads or truncates the habit vector to n entries
func (d Draft) NormalizeHabits(n int) Draft {
	out := d.Clone()
	habits := make([]bool, n)
	copy(habits, d.Habits)
	out.Habits = habits
	return out
}
