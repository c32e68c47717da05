package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StageStatus represents the current state of a conversion stage in the TUI.
type StageStatus string

const (
	StatusPending StageStatus = "pending"
	StatusRunning StageStatus = "running"
	StatusDone    StageStatus = "done"
	StatusFailed  StageStatus = "failed"
)

// StageState tracks the display state of a single conversion stage.
type StageState struct {
	Name   string
	Status StageStatus
	Detail string
}

// StageUpdateMsg reports progress of one conversion stage.
type StageUpdateMsg struct {
	Stage  string
	Status StageStatus
	Detail string
}

// ConvertDoneMsg signals that the conversion completed successfully.
type ConvertDoneMsg struct {
	Count int
	Path  string
}

// ConvertErrorMsg signals that the conversion failed with an error.
type ConvertErrorMsg struct {
	Err error
}

func (StageUpdateMsg) isDisplayEvent()  {}
func (ConvertDoneMsg) isDisplayEvent()  {}
func (ConvertErrorMsg) isDisplayEvent() {}

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the Bubble Tea model for conversion stage display.
type Model struct {
	stages  []StageState
	spinner spinner.Model
	done    bool
	err     error
	count   int
	path    string
}

// NewModel creates a Model initialized with the given stage names.
func NewModel(stageNames []string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	stages := make([]StageState, len(stageNames))
	for i, name := range stageNames {
		stages[i] = StageState{Name: name, Status: StatusPending}
	}

	return Model{
		stages:  stages,
		spinner: s,
	}
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StageUpdateMsg:
		for i := range m.stages {
			if m.stages[i].Name == msg.Stage {
				m.stages[i].Status = msg.Status
				if msg.Detail != "" {
					m.stages[i].Detail = msg.Detail
				}
				break
			}
		}
		return m, nil

	case ConvertDoneMsg:
		m.done = true
		m.count = msg.Count
		m.path = msg.Path
		return m, tea.Quit

	case ConvertErrorMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the stage list with status indicators.
func (m Model) View() string {
	var b strings.Builder

	for _, stage := range m.stages {
		line := fmt.Sprintf("  %s %s", m.indicator(stage.Status), stage.Name)
		if stage.Detail != "" {
			line += " " + detailStyle.Render("("+stage.Detail+")")
		}
		b.WriteString(line + "\n")
	}

	if m.done {
		if m.err != nil {
			b.WriteString(failedStyle.Render(fmt.Sprintf("\n  conversion failed: %v", m.err)) + "\n")
		} else {
			b.WriteString(fmt.Sprintf("\n  Converted %d contacts → %s\n", m.count, m.path))
		}
	}

	return b.String()
}

func (m Model) indicator(status StageStatus) string {
	switch status {
	case StatusRunning:
		return m.spinner.View()
	case StatusDone:
		return doneStyle.Render("✓")
	case StatusFailed:
		return failedStyle.Render("✗")
	default:
		return detailStyle.Render("·")
	}
}
