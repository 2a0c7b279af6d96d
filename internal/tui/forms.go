package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/models"
)

// DraftFormModel backs the Today form fields
type DraftFormModel struct {
	Mood    int
	Energy  int
	Anxiety int
	Fatigue int
	Habits  []int // indexes of the checked habits
	Note    string
}

// ConfirmationFormModel backs the yes/no dialog
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

func newDraftFormModel(d models.Draft) *DraftFormModel {
	fm := &DraftFormModel{
		Mood:    d.Mood,
		Energy:  d.Energy,
		Anxiety: d.Anxiety,
		Fatigue: d.Fatigue,
		Habits:  []int{},
		Note:    d.Note,
	}
	for i, done := range d.Habits {
		if done {
			fm.Habits = append(fm.Habits, i)
		}
	}
	return fm
}

// Draft converts the form values into a draft with habitCount habits
func (fm *DraftFormModel) Draft(habitCount int) models.Draft {
	d := models.Draft{
		Mood:    fm.Mood,
		Energy:  fm.Energy,
		Anxiety: fm.Anxiety,
		Fatigue: fm.Fatigue,
		Habits:  make([]bool, habitCount),
		Note:    strings.TrimSpace(fm.Note),
	}
	for _, i := range fm.Habits {
		if i >= 0 && i < habitCount {
			d.Habits[i] = true
		}
	}
	return d.Clamp()
}

func ratingOptions(field models.RatingField) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, constants.MaxRating-constants.MinRating+1)
	for v := constants.MinRating; v <= constants.MaxRating; v++ {
		label := fmt.Sprint(v)
		switch {
		case v == constants.MinRating && field.Inverted():
			label += " (none)"
		case v == constants.MinRating:
			label += " (very low)"
		case v == constants.MaxRating && field.Inverted():
			label += " (severe)"
		case v == constants.MaxRating:
			label += " (great)"
		}
		opts = append(opts, huh.NewOption(label, v))
	}
	return opts
}

// NewDraftForm builds the daily entry form over fm
func NewDraftForm(fm *DraftFormModel, habits []constants.HabitDefinition) *huh.Form {
	habitOpts := make([]huh.Option[int], len(habits))
	for i, h := range habits {
		habitOpts[i] = huh.NewOption(h.Name, i)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(models.RatingMood.Label()).
				Options(ratingOptions(models.RatingMood)...).
				Value(&fm.Mood),
			huh.NewSelect[int]().
				Title(models.RatingEnergy.Label()).
				Options(ratingOptions(models.RatingEnergy)...).
				Value(&fm.Energy),
			huh.NewSelect[int]().
				Title(models.RatingAnxiety.Label()).
				Options(ratingOptions(models.RatingAnxiety)...).
				Value(&fm.Anxiety),
			huh.NewSelect[int]().
				Title(models.RatingFatigue.Label()).
				Options(ratingOptions(models.RatingFatigue)...).
				Value(&fm.Fatigue),
		),
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Habits done today").
				Options(habitOpts...).
				Value(&fm.Habits),
			huh.NewText().
				Title("Note").
				CharLimit(500).
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm builds a yes/no dialog over fm
func NewConfirmationForm(fm *ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
