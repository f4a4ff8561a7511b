// Package tui implements an interactive bubbletea renderer for builds:
// a scrolling, severity-tinted log view with a live status header and a
// cancel key binding.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stellarforge/ubuild/internal/adapters/linear"
	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/ui/style"
)

// maxLines bounds the retained scrollback. Older lines are evicted;
// the build core itself never retains log history.
const maxLines = 5000

type lineMsg string

type stateMsg domain.BuildState

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(style.Green)
	errorStyle   = lipgloss.NewStyle().Foreground(style.Red)
	warningStyle = lipgloss.NewStyle().Foreground(style.Yellow)
	mutedStyle   = lipgloss.NewStyle().Foreground(style.Slate)
)

// Model is the bubbletea model for a single build run.
type Model struct {
	lines  []string
	state  domain.BuildState
	width  int
	height int

	onCancel func()
}

// NewModel creates a model. onCancel is invoked when the user requests
// cancellation of a running build.
func NewModel(onCancel func()) Model {
	return Model{
		state:    domain.StateIdle,
		onCancel: onCancel,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case lineMsg:
		m.lines = append(m.lines, string(msg))
		if len(m.lines) > maxLines {
			m.lines = m.lines[len(m.lines)-maxLines:]
		}
		return m, nil

	case stateMsg:
		m.state = domain.BuildState(msg)
		if m.terminal() {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "c":
			if m.state == domain.StateRunning && m.onCancel != nil {
				m.onCancel()
			}
			return m, nil
		case "q", "esc":
			if m.terminal() || m.state == domain.StateIdle {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("ubuild") + "  " + m.stateLabel() + "\n")

	visible := m.visibleLines()
	for _, line := range visible {
		b.WriteString(m.renderLine(line) + "\n")
	}

	b.WriteString(mutedStyle.Render("c: cancel  q: quit"))
	return b.String()
}

func (m Model) terminal() bool {
	switch m.state {
	case domain.StateSucceeded, domain.StateFailed, domain.StateCancelled:
		return true
	case domain.StateIdle, domain.StateRunning:
		return false
	}
	return false
}

func (m Model) stateLabel() string {
	label := m.state.String()
	switch m.state {
	case domain.StateSucceeded:
		return successStyle.Render(style.Check + " " + label)
	case domain.StateFailed:
		return errorStyle.Render(style.Cross + " " + label)
	case domain.StateCancelled:
		return warningStyle.Render(style.Warning + " " + label)
	case domain.StateRunning:
		return headerStyle.Render(label)
	case domain.StateIdle:
		return mutedStyle.Render(label)
	}
	return label
}

// visibleLines returns the tail of the scrollback that fits between the
// header and footer rows.
func (m Model) visibleLines() []string {
	rows := m.height - 2
	if rows <= 0 || m.height == 0 {
		return m.lines
	}
	if len(m.lines) <= rows {
		return m.lines
	}
	return m.lines[len(m.lines)-rows:]
}

func (m Model) renderLine(line string) string {
	switch linear.Classify(line) {
	case linear.LevelError:
		return errorStyle.Render(line)
	case linear.LevelWarning:
		return warningStyle.Render(line)
	case linear.LevelSuccess:
		return successStyle.Render(line)
	case linear.LevelInfo:
		return line
	}
	return line
}
