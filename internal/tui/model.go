// Package tui is the interactive bubbletea shell over the entry engine.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/history"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/motivation"
	"github.com/julianstephens/cortisol/internal/tui/components/historylist"
	"github.com/julianstephens/cortisol/internal/tui/components/summary"
)

const tabCount = 3

// Config wires the model to its engine and storage
type Config struct {
	Engine         *engine.Engine
	Repo           *history.Repository
	Today          func() (string, error)
	Picker         *motivation.Picker
	ShowMotivation bool
}

// ConfirmationMsg opens a yes/no dialog that applies Action when confirmed
type ConfirmationMsg struct {
	Message string
	Action  engine.Action
}

type Model struct {
	cfg           Config
	session       engine.State
	today         string
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	historyList   historylist.Model
	summary       summary.Model
	form          *huh.Form
	draftForm     *DraftFormModel
	confirmForm   *ConfirmationFormModel
	pendingAction engine.Action
	encouragement string
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

// SessionState is the active tab or dialog
type SessionState = constants.SessionState

// New loads the history and opens the Today tab
func New(cfg Config) (Model, error) {
	if cfg.Engine == nil {
		cfg.Engine = engine.Default()
	}
	if cfg.Picker == nil {
		cfg.Picker = motivation.NewSeeded()
	}

	h, err := cfg.Repo.Load()
	if err != nil {
		return Model{}, err
	}

	m := Model{
		cfg:         cfg,
		session:     cfg.Engine.NewState(h),
		state:       constants.StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		historyList: historylist.New(h, cfg.Engine.HabitCount(), 0, 0),
		summary:     summary.New(0, 0),
	}
	m.refreshToday()
	m.refreshViews()
	return m, nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		keys = append(keys, m.keys.Log, m.keys.ClearToday, m.keys.ClearAll)
	case constants.StateHistory:
		keys = append(keys, m.keys.Up, m.keys.Down, m.keys.ClearAll)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	actions := []key.Binding{m.keys.Log, m.keys.ClearToday, m.keys.ClearAll}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// History returns the session's current history
func (m Model) History() models.History {
	return m.session.History
}

// State returns the active tab or dialog
func (m Model) State() SessionState {
	return m.state
}

// refreshToday recomputes the calendar date so a session left open past
// midnight logs to the new day
func (m *Model) refreshToday() {
	if m.cfg.Today == nil {
		return
	}
	today, err := m.cfg.Today()
	if err != nil {
		logger.Warn("Failed to compute today's date", "error", err)
		m.err = err
		return
	}
	m.today = today
}

func (m *Model) refreshViews() {
	h := m.session.History
	m.historyList.SetHistory(h)

	var text string
	if m.cfg.ShowMotivation {
		text = m.cfg.Picker.Motivation()
	}
	m.summary.SetProgress(m.cfg.Engine.ComputeProgress(h), text)
}

// todayEntry returns the entry already submitted for today, if any
func (m Model) todayEntry() (models.Entry, bool) {
	if m.today == "" {
		return models.Entry{}, false
	}
	return m.session.History.Find(m.today)
}

// apply runs one reducer action and persists the history when it changed.
// A failed save leaves the session as it was before the action.
func (m *Model) apply(action engine.Action) bool {
	next, changed := m.cfg.Engine.Reduce(m.session, action)
	if !changed {
		m.session = next
		return false
	}

	if err := m.cfg.Repo.Save(next.History); err != nil {
		logger.Error("Failed to save history", "error", err)
		m.err = err
		return true
	}
	m.session = next
	m.err = nil
	m.refreshViews()
	return true
}
