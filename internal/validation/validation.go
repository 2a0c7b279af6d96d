package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateDate   ConflictType = "duplicate_date"
	ConflictInvalidDate     ConflictType = "invalid_date"
	ConflictRatingRange     ConflictType = "rating_out_of_range"
	ConflictHabitLength     ConflictType = "habit_length_mismatch"
	ConflictDerivedMismatch ConflictType = "derived_mismatch"
)

// Conflict represents a problem detected in the stored history
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string // YYYY-MM-DD format (if applicable)
	Indexes     []int  // Positions in the history of the entries involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks a history against the scoring rules and habit list
type Validator struct {
	engine     *engine.Engine
	habitCount int
}

// New creates a Validator for the engine's rules and habits
func New(e *engine.Engine) *Validator {
	return &Validator{engine: e, habitCount: e.HabitCount()}
}

// ValidateHistory checks every entry of the history
func (v *Validator) ValidateHistory(h models.History) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// Duplicate dates, reported in order of first appearance
	byDate := make(map[string][]int)
	var dates []string
	for i, entry := range h {
		if entry.Date == "" {
			continue
		}
		if _, seen := byDate[entry.Date]; !seen {
			dates = append(dates, entry.Date)
		}
		byDate[entry.Date] = append(byDate[entry.Date], i)
	}
	for _, date := range dates {
		if idx := byDate[date]; len(idx) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateDate,
				Description: fmt.Sprintf("%d entries recorded on %s (positions %v)", len(idx), date, idx),
				Date:        date,
				Indexes:     idx,
			})
		}
	}

	for i, entry := range h {
		if !utils.ValidateDate(entry.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Entry %d has invalid date: %q", i, entry.Date),
				Date:        entry.Date,
				Indexes:     []int{i},
			})
		}

		draft := entry.Draft()
		for _, field := range models.RatingFields {
			value := draft.Rating(field)
			if value < constants.MinRating || value > constants.MaxRating {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictRatingRange,
					Description: fmt.Sprintf("Entry %s has %s %d outside %d-%d", label(entry, i), field.Label(), value, constants.MinRating, constants.MaxRating),
					Date:        entry.Date,
					Indexes:     []int{i},
				})
			}
		}

		if len(entry.Habits) != v.habitCount {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictHabitLength,
				Description: fmt.Sprintf("Entry %s has %d habits, expected %d", label(entry, i), len(entry.Habits), v.habitCount),
				Date:        entry.Date,
				Indexes:     []int{i},
			})
		}

		want := v.engine.ComputeDerived(draft)
		if got := entry.Derived(); got != want {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictDerivedMismatch,
				Description: fmt.Sprintf("Entry %s stores score/xp/recovery %d/%d/%d, ratings give %d/%d/%d",
					label(entry, i), got.Score, got.XP, got.Recovery, want.Score, want.XP, want.Recovery),
				Date:    entry.Date,
				Indexes: []int{i},
			})
		}
	}

	return result
}

func label(entry models.Entry, i int) string {
	if entry.Date != "" {
		return entry.Date
	}
	return fmt.Sprintf("#%d", i)
}

// AutoFixDuplicateDates keeps the first entry of each duplicated date and drops the rest.
// The first entry is the one submission already treats as the day's record.
func AutoFixDuplicateDates(conflicts []Conflict, h models.History) (models.History, []FixAction) {
	actions := []FixAction{}
	drop := make(map[int]bool)

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateDate || len(conflict.Indexes) <= 1 {
			continue
		}
		idx := append([]int(nil), conflict.Indexes...)
		sort.Ints(idx)
		for _, i := range idx[1:] {
			drop[i] = true
		}
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Removed %d duplicate entr(ies) for %s (kept position %d)", len(idx)-1, conflict.Date, idx[0]),
			SourceConflict: conflict,
		})
	}

	if len(drop) == 0 {
		return h, actions
	}

	out := make(models.History, 0, len(h)-len(drop))
	for i, entry := range h {
		if !drop[i] {
			out = append(out, entry)
		}
	}
	return out, actions
}

// AutoFixDerived recomputes score, xp and recovery for entries whose stored values
// disagree with their ratings. Ratings themselves are left untouched.
func (v *Validator) AutoFixDerived(conflicts []Conflict, h models.History) (models.History, []FixAction) {
	actions := []FixAction{}
	out := h.Clone()

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDerivedMismatch {
			continue
		}
		for _, i := range conflict.Indexes {
			if i < 0 || i >= len(out) {
				continue
			}
			d := v.engine.ComputeDerived(out[i].Draft())
			out[i].Score, out[i].XP, out[i].Recovery = d.Score, d.XP, d.Recovery
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Recomputed score/xp/recovery for %s", label(out[i], i)),
				SourceConflict: conflict,
			})
		}
	}
	return out, actions
}
