package historylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/utils"
)

const noteWidth = 40

type Item struct {
	Entry    models.Entry
	MaxScore int
}

func (i Item) Title() string {
	return utils.FormatDisplayDate(i.Entry.Date)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("Score %d/%d | +%d XP | Recovery %d%%", i.Entry.Score, i.MaxScore, i.Entry.XP, i.Entry.Recovery)
	if note := strings.TrimSpace(i.Entry.Note); note != "" {
		desc += " | " + truncate(note, noteWidth)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Date + " " + i.Entry.Note }

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type Model struct {
	list     list.Model
	maxScore int
}

// New lists the history newest first
func New(h models.History, habitCount, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	m := Model{list: l, maxScore: engine.MaxScore(habitCount)}
	m.SetHistory(h)
	return m
}

func (m *Model) SetHistory(h models.History) {
	items := make([]list.Item, 0, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		items = append(items, Item{Entry: h[i], MaxScore: m.maxScore})
	}
	m.list.SetItems(items)
}

// Len returns the number of listed entries
func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the filter input has focus
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No entries yet.\n  Log today from the Today tab."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
