package models

import "github.com/julianstephens/cortisol/internal/constants"

// Derived holds the values computed from a draft at submission time
type Derived struct {
	Score    int `json:"score"`
	XP       int `json:"xp"`
	Recovery int `json:"recovery"`
}

// Entry is an immutable, finalized daily record.
// The JSON field names are the persisted wire names and must not change.
type Entry struct {
	ID       string `json:"id,omitempty"`
	Date     string `json:"date"` // YYYY-MM-DD format
	Mood     int    `json:"humeur"`
	Energy   int    `json:"energie"`
	Anxiety  int    `json:"anxiete"`
	Fatigue  int    `json:"fatigue"`
	Habits   []bool `json:"habits"`
	Note     string `json:"note"`
	Score    int    `json:"score"`
	XP       int    `json:"xp"`
	Recovery int    `json:"recovery"`
}

// NewEntry combines a draft, its derived values and the submission date
func NewEntry(id, date string, draft Draft, derived Derived) Entry {
	d := draft.Clone()
	if d.Habits == nil {
		d.Habits = []bool{}
	}
	return Entry{
		ID:       id,
		Date:     date,
		Mood:     d.Mood,
		Energy:   d.Energy,
		Anxiety:  d.Anxiety,
		Fatigue:  d.Fatigue,
		Habits:   d.Habits,
		Note:     d.Note,
		Score:    derived.Score,
		XP:       derived.XP,
		Recovery: derived.Recovery,
	}
}

// Draft returns the user-entered part of the entry
func (e Entry) Draft() Draft {
	return Draft{
		Mood:    e.Mood,
		Energy:  e.Energy,
		Anxiety: e.Anxiety,
		Fatigue: e.Fatigue,
		Habits:  append([]bool(nil), e.Habits...),
		Note:    e.Note,
	}
}

// Derived returns the computed part of the entry
func (e Entry) Derived() Derived {
	return Derived{Score: e.Score, XP: e.XP, Recovery: e.Recovery}
}

// History is the ordered sequence of entries, oldest first
type History []Entry

// Has reports whether an entry exists for the given date
func (h History) Has(date string) bool {
	_, ok := h.Find(date)
	return ok
}

// Find returns the first entry recorded for the given date
func (h History) Find(date string) (Entry, bool) {
	for _, e := range h {
		if e.Date == date {
			return e, true
		}
	}
	return Entry{}, false
}

// Clone copies the history and every habit vector in it
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	for i, e := range h {
		out[i] = e
		out[i].Habits = append([]bool(nil), e.Habits...)
	}
	return out
}

// Last returns the most recently submitted entry
func (h History) Last() (Entry, bool) {
	if len(h) == 0 {
		return Entry{}, false
	}
	return h[len(h)-1], true
}

// Progress is the gamified summary derived from a history
type Progress struct {
	XPTotal         int
	Level           int
	XPToNext        int
	ProgressPercent int
	Entries         int
	Phase           constants.Phase
}
