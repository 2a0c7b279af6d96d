package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/engine"
)

// chromeHeight is the room taken by the tab bar, status line and help
const chromeHeight = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.historyList.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.summary.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		return m, nil

	case ConfirmationMsg:
		return m, m.openConfirmation(msg)
	}

	switch m.state {
	case constants.StateEditing:
		return m, m.updateDraftForm(msg)
	case constants.StateConfirmation:
		return m, m.updateConfirmation(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		// the filter input owns the keyboard while it is open
		if !(m.state == constants.StateHistory && m.historyList.Filtering()) {
			if handled, cmd := m.handleKey(msg); handled {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateHistory:
		m.historyList, cmd = m.historyList.Update(msg)
	case constants.StateProgress:
		m.summary, cmd = m.summary.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		return true, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.ClearToday):
		m.refreshToday()
		return true, confirm(
			fmt.Sprintf("Delete the entry for %s?", m.today),
			engine.ClearTodayAction{Today: m.today},
		)
	case key.Matches(msg, m.keys.ClearAll):
		return true, confirm(
			fmt.Sprintf("Delete all %d entries? This cannot be undone.", len(m.session.History)),
			engine.ClearAllAction{},
		)
	case m.state == constants.StateToday && key.Matches(msg, m.keys.Log):
		return true, m.openDraftForm()
	}
	return false, nil
}

func confirm(message string, action engine.Action) tea.Cmd {
	return func() tea.Msg {
		return ConfirmationMsg{Message: message, Action: action}
	}
}

func (m *Model) openDraftForm() tea.Cmd {
	m.refreshToday()
	if m.today == "" {
		m.status = "Cannot log: today's date is unknown."
		return nil
	}
	if _, ok := m.todayEntry(); ok {
		m.status = "Already logged today. Press c to clear it first."
		return nil
	}

	m.draftForm = newDraftFormModel(m.session.Draft)
	m.form = NewDraftForm(m.draftForm, m.cfg.Engine.Habits)
	m.state = constants.StateEditing
	return m.form.Init()
}

func (m *Model) updateDraftForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.keepDraft()
		m.closeForm(constants.StateToday)
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitDraft()
	case huh.StateAborted:
		m.keepDraft()
		m.closeForm(constants.StateToday)
	}
	return cmd
}

// keepDraft stores the form values so a cancelled form reopens where it was
func (m *Model) keepDraft() {
	if m.draftForm == nil {
		return
	}
	m.apply(engine.SetDraft{Draft: m.draftForm.Draft(m.cfg.Engine.HabitCount())})
}

func (m *Model) submitDraft() {
	m.keepDraft()
	m.closeForm(constants.StateToday)

	if !m.apply(engine.SubmitDraft{Today: m.today}) {
		m.status = "Already logged today."
		return
	}
	if m.err != nil {
		m.status = fmt.Sprintf("Failed to save: %v", m.err)
		return
	}

	entry, _ := m.todayEntry()
	m.status = fmt.Sprintf("✓ Logged %s: score %d/%d, +%d XP", m.today, entry.Score, engine.MaxScore(m.cfg.Engine.HabitCount()), entry.XP)
	m.encouragement = ""
	if m.cfg.ShowMotivation {
		m.encouragement = m.cfg.Picker.Encouragement()
	}
}

func (m *Model) closeForm(next SessionState) {
	m.form = nil
	m.draftForm = nil
	m.state = next
}

func (m *Model) openConfirmation(msg ConfirmationMsg) tea.Cmd {
	m.confirmForm = &ConfirmationFormModel{Message: msg.Message}
	m.pendingAction = msg.Action
	m.form = NewConfirmationForm(m.confirmForm)
	if m.state != constants.StateConfirmation {
		m.previousState = m.state
	}
	m.state = constants.StateConfirmation
	return m.form.Init()
}

func (m *Model) updateConfirmation(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.finishConfirmation(false)
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.finishConfirmation(m.confirmForm.Confirmed)
	case huh.StateAborted:
		m.finishConfirmation(false)
	}
	return cmd
}

func (m *Model) finishConfirmation(confirmed bool) {
	action := m.pendingAction
	m.pendingAction = nil
	m.confirmForm = nil
	m.form = nil
	m.state = m.previousState

	if !confirmed || action == nil {
		m.status = "Cancelled."
		return
	}

	before := len(m.session.History)
	if !m.apply(action) {
		m.status = "Nothing to delete."
		return
	}
	if m.err != nil {
		m.status = fmt.Sprintf("Failed to save: %v", m.err)
		return
	}

	deleted := before - len(m.session.History)
	if deleted == 1 {
		m.status = "✓ Deleted 1 entry."
	} else {
		m.status = fmt.Sprintf("✓ Deleted %d entries.", deleted)
	}
	m.encouragement = ""
}
