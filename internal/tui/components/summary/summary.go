package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/motivation"
)

const maxBarWidth = 60

var (
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	levelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	motivationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model renders the progression summary: phase, level and XP bar
type Model struct {
	viewport   viewport.Model
	bar        progress.Model
	Progress   models.Progress
	Motivation string
}

func New(width, height int) Model {
	m := Model{
		viewport: viewport.New(width, height),
		bar:      progress.New(progress.WithDefaultGradient()),
	}
	m.bar.Width = barWidth(width)
	m.Render()
	return m
}

func barWidth(width int) int {
	if width <= 0 || width > maxBarWidth {
		return maxBarWidth
	}
	return width
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	// not sized yet
	if m.viewport.Height <= 0 {
		return m.Content()
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.bar.Width = barWidth(width)
	m.Render()
}

// SetProgress replaces the summary. An empty motivation hides the line.
func (m *Model) SetProgress(p models.Progress, motivationText string) {
	m.Progress = p
	m.Motivation = motivationText
	m.Render()
}

// Content returns the rendered summary without viewport clipping
func (m Model) Content() string {
	p := m.Progress

	var b strings.Builder
	b.WriteString(phaseStyle.Render(motivation.PhaseBanner(p.Phase)))
	b.WriteString("\n\n")
	b.WriteString(levelStyle.Render(fmt.Sprintf("Level %d", p.Level)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  ·  %d XP total  ·  %d entries", p.XPTotal, p.Entries)))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(float64(p.ProgressPercent) / 100))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d XP to level %d", p.XPToNext, p.Level+1)))
	b.WriteString("\n")
	if m.Motivation != "" {
		b.WriteString("\n")
		b.WriteString(motivationStyle.Render(m.Motivation))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) Render() {
	m.viewport.SetContent(m.Content())
}
