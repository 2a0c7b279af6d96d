// Package entries holds the commands that read and write the daily history.
package entries

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/cortisol/internal/constants"
)

// confirmFunc asks a yes/no question; tests replace it
var confirmFunc = func(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// ResolveHabit finds a habit by 1-based number or by name.
// Names match case-insensitively, on the full name or a unique prefix.
func ResolveHabit(habits []constants.HabitDefinition, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, fmt.Errorf("empty habit reference")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(habits) {
			return 0, fmt.Errorf("habit number %d out of range (1-%d)", n, len(habits))
		}
		return n - 1, nil
	}

	lower := strings.ToLower(ref)
	match := -1
	for i, h := range habits {
		name := strings.ToLower(h.Name)
		if name == lower {
			return i, nil
		}
		if strings.HasPrefix(name, lower) {
			if match >= 0 {
				return 0, fmt.Errorf("habit %q is ambiguous", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, fmt.Errorf("unknown habit %q (see 'cortisol habits')", ref)
	}
	return match, nil
}

func habitSummary(done []bool) string {
	n := 0
	for _, h := range done {
		if h {
			n++
		}
	}
	return fmt.Sprintf("%d/%d", n, len(done))
}
