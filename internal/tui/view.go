package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/utils"
)

var tabTitles = []string{"Today", "History", "Progress"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateHistory:
		content = m.historyList.View()
	case constants.StateProgress:
		content = m.summary.View()
	case constants.StateEditing:
		content = m.form.View()
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
		if m.state == constants.StateEditing {
			active = constants.StateToday
		}
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewToday() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(utils.FormatDisplayDate(m.today)))
	b.WriteString("\n\n")

	entry, ok := m.todayEntry()
	if !ok {
		b.WriteString("Nothing logged yet for today.\n")
		b.WriteString(mutedStyle.Render("Press enter to fill in today's entry."))
		return b.String()
	}

	for _, field := range models.RatingFields {
		b.WriteString(fmt.Sprintf("%-8s %d/%d\n", field.Label(), entry.Draft().Rating(field), constants.MaxRating))
	}
	b.WriteString("\n")

	for i, h := range m.cfg.Engine.Habits {
		if i < len(entry.Habits) && entry.Habits[i] {
			b.WriteString(doneStyle.Render("[x] " + h.Name))
		} else {
			b.WriteString(mutedStyle.Render("[ ] " + h.Name))
		}
		b.WriteString("\n")
	}

	if note := strings.TrimSpace(entry.Note); note != "" {
		b.WriteString("\n")
		b.WriteString(note)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render(fmt.Sprintf("Score %d/%d  ·  +%d XP  ·  Recovery %d%%",
		entry.Score, engine.MaxScore(m.cfg.Engine.HabitCount()), entry.XP, entry.Recovery)))
	if m.encouragement != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.encouragement))
	}
	return b.String()
}

func (m Model) viewConfirmation() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render("Confirm"),
		"",
		m.form.View(),
	)
}
