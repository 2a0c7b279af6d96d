package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/models"
)

func submitted(t *testing.T, e *engine.Engine, dates ...string) models.History {
	t.Helper()
	var h models.History
	for _, date := range dates {
		var ok bool
		h, _, ok = e.Submit(h, e.NewDraft(), date)
		if !ok {
			t.Fatalf("submit %s refused", date)
		}
	}
	return h
}

func TestValidateHistory_Clean(t *testing.T) {
	e := engine.Default()
	h := submitted(t, e, "2024-03-01", "2024-03-02", "2024-03-03")

	result := New(e).ValidateHistory(h)

	if result.HasConflicts() {
		t.Fatalf("expected no conflicts, got:\n%s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %s", result.FormatReport())
	}
}

func TestValidateHistory_DuplicateDates(t *testing.T) {
	e := engine.Default()
	h := submitted(t, e, "2024-03-01", "2024-03-02")
	h = append(h, h[0], h[1], h[0])

	result := New(e).ValidateHistory(h)

	if got := result.Count(ConflictDuplicateDate); got != 2 {
		t.Fatalf("expected 2 duplicate date conflicts, got %d", got)
	}
	first := result.Conflicts[0]
	if first.Date != "2024-03-01" {
		t.Errorf("expected first conflict for 2024-03-01, got %s", first.Date)
	}
	if len(first.Indexes) != 3 {
		t.Errorf("expected 3 positions, got %v", first.Indexes)
	}
}

func TestValidateHistory_EntryProblems(t *testing.T) {
	e := engine.Default()
	good := submitted(t, e, "2024-03-01")[0]

	tests := []struct {
		name   string
		mutate func(*models.Entry)
		want   ConflictType
	}{
		{
			name:   "invalid date",
			mutate: func(entry *models.Entry) { entry.Date = "2024-02-30" },
			want:   ConflictInvalidDate,
		},
		{
			name:   "missing date",
			mutate: func(entry *models.Entry) { entry.Date = "" },
			want:   ConflictInvalidDate,
		},
		{
			name:   "mood too high",
			mutate: func(entry *models.Entry) { entry.Mood = 9 },
			want:   ConflictRatingRange,
		},
		{
			name:   "fatigue zero",
			mutate: func(entry *models.Entry) { entry.Fatigue = 0 },
			want:   ConflictRatingRange,
		},
		{
			name:   "short habits",
			mutate: func(entry *models.Entry) { entry.Habits = []bool{true, false} },
			want:   ConflictHabitLength,
		},
		{
			name:   "tampered xp",
			mutate: func(entry *models.Entry) { entry.XP = 10 },
			want:   ConflictDerivedMismatch,
		},
		{
			name:   "tampered recovery",
			mutate: func(entry *models.Entry) { entry.Recovery = 99 },
			want:   ConflictDerivedMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := good
			entry.Habits = append([]bool(nil), good.Habits...)
			tt.mutate(&entry)

			result := New(e).ValidateHistory(models.History{entry})
			if result.Count(tt.want) == 0 {
				t.Fatalf("expected %s conflict, got:\n%s", tt.want, result.FormatReport())
			}
			if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:") {
				t.Errorf("unexpected report header: %s", result.FormatReport())
			}
		})
	}
}

func TestAutoFixDuplicateDates(t *testing.T) {
	e := engine.Default()
	h := submitted(t, e, "2024-03-01", "2024-03-02")
	dup := h[0]
	dup.Note = "second try"
	h = append(h, dup)

	v := New(e)
	result := v.ValidateHistory(h)
	fixed, actions := AutoFixDuplicateDates(result.Conflicts, h)

	if len(actions) != 1 {
		t.Fatalf("expected 1 fix action, got %d", len(actions))
	}
	if len(fixed) != 2 {
		t.Fatalf("expected 2 entries after fix, got %d", len(fixed))
	}
	if fixed[0].Note != "" {
		t.Errorf("expected the first entry of the day to be kept, got note %q", fixed[0].Note)
	}
	if after := v.ValidateHistory(fixed); after.HasConflicts() {
		t.Errorf("conflicts remain after fix:\n%s", after.FormatReport())
	}
	if len(h) != 3 {
		t.Error("input history was modified")
	}
}

func TestAutoFixDuplicateDates_NothingToDo(t *testing.T) {
	e := engine.Default()
	h := submitted(t, e, "2024-03-01")

	fixed, actions := AutoFixDuplicateDates(nil, h)
	if len(actions) != 0 || len(fixed) != 1 {
		t.Errorf("expected untouched history, got %d entries and %d actions", len(fixed), len(actions))
	}
}

func TestAutoFixDerived(t *testing.T) {
	e := engine.Default()
	h := submitted(t, e, "2024-03-01", "2024-03-02")
	h[1].XP = 10
	h[1].Score = 12

	v := New(e)
	result := v.ValidateHistory(h)
	fixed, actions := v.AutoFixDerived(result.Conflicts, h)

	if len(actions) != 1 {
		t.Fatalf("expected 1 fix action, got %d", len(actions))
	}
	if fixed[1].XP != 1 || fixed[1].Score != 0 {
		t.Errorf("expected recomputed 0/1, got %d/%d", fixed[1].Score, fixed[1].XP)
	}
	if h[1].XP != 10 {
		t.Error("input history was modified")
	}
	if after := v.ValidateHistory(fixed); after.HasConflicts() {
		t.Errorf("conflicts remain after fix:\n%s", after.FormatReport())
	}
}

func TestValidateHistory_EmptyHabitVectorScoresAgainstHabitList(t *testing.T) {
	e := engine.Default()
	entry := models.Entry{
		Date: "2024-03-01",
		Mood: 5, Energy: 5, Anxiety: 1, Fatigue: 1,
		Habits: []bool{},
		Score:  4, XP: 1, Recovery: 100,
	}

	v := New(e)
	result := v.ValidateHistory(models.History{entry})

	if got := result.Count(ConflictDerivedMismatch); got != 0 {
		t.Fatalf("expected stored 4/1/100 to match, got:\n%s", result.FormatReport())
	}
	if got := result.Count(ConflictHabitLength); got != 1 {
		t.Errorf("expected 1 habit length conflict, got %d", got)
	}
}

func TestAutoFixDerived_EmptyHabitVector(t *testing.T) {
	e := engine.Default()
	h := models.History{{
		Date: "2024-03-01",
		Mood: 5, Energy: 5, Anxiety: 1, Fatigue: 1,
		Habits: []bool{},
		Score:  4, XP: 10, Recovery: 100,
	}}

	v := New(e)
	result := v.ValidateHistory(h)
	if got := result.Count(ConflictDerivedMismatch); got != 1 {
		t.Fatalf("expected 1 derived mismatch, got:\n%s", result.FormatReport())
	}

	fixed, _ := v.AutoFixDerived(result.Conflicts, h)
	if fixed[0].Score != 4 || fixed[0].XP != 1 || fixed[0].Recovery != 100 {
		t.Errorf("expected 4/1/100, got %d/%d/%d", fixed[0].Score, fixed[0].XP, fixed[0].Recovery)
	}
	if len(fixed[0].Habits) != 0 {
		t.Errorf("habit vector should be left as stored, got %v", fixed[0].Habits)
	}
}
