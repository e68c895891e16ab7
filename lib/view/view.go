package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"f1midi/lib/monitor"
	"f1midi/lib/surface"
)

const (
	refreshRate = 50 * time.Millisecond
	barHeight   = 8
)

var (
	padStyle     = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(lipgloss.Color("#aaaaaa")).Background(lipgloss.Color("#3c3c46"))
	pressedStyle = padStyle.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#e67828"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3ca0dc"))
	trackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2d2d34"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e67828"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc3c3c"))
	sectionStyle = lipgloss.NewStyle().MarginRight(3)
)

type tickMsg time.Time

// ErrMsg ends the program and leaves err on screen.
type ErrMsg struct{ Err error }

type Model struct {
	State *monitor.State
	Title string

	err      error
	quitting bool
}

func NewModel(state *monitor.State, title string) Model {
	return Model{State: state, Title: title}
}

func tick() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case tickMsg:
		return m, tick()
	case ErrMsg:
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) Err() error {
	return m.err
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.State.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		sectionStyle.Render(Matrix(snap)),
		Bars(snap),
	))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d messages", snap.Messages)))
	if snap.Last != "" {
		b.WriteString(labelStyle.Render("  last: " + snap.Last))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()))
	}
	b.WriteString("\n" + labelStyle.Render("q to quit") + "\n")
	return b.String()
}

// Matrix renders the pads as rows of note numbers, pressed pads highlighted.
func Matrix(snap monitor.Snapshot) string {
	rows := make([]string, surface.Rows)
	for _, c := range snap.Cells {
		style := padStyle
		if c.Pressed {
			style = pressedStyle
		}
		rows[c.Row-1] += style.Render(fmt.Sprintf("%d", c.Note)) + " "
	}
	return strings.Join(rows, "\n\n")
}

func Bars(snap monitor.Snapshot) string {
	cols := make([]string, 0, len(snap.Analog))
	for _, a := range snap.Analog {
		filled := 0
		if a.Known {
			filled = (int(a.Value)*barHeight + surface.MaxValue/2) / surface.MaxValue
		}
		var lines []string
		for i := barHeight; i > 0; i-- {
			if i <= filled {
				lines = append(lines, barStyle.Render("██"))
			} else {
				lines = append(lines, trackStyle.Render("░░"))
			}
		}
		value := "--"
		if a.Known {
			value = fmt.Sprintf("%d", a.Value)
		}
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-3s", value)),
			labelStyle.Render(fmt.Sprintf("%-3s", fmt.Sprintf("%d", a.CC))))
		cols = append(cols, strings.Join(lines, "\n")+" ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cols...)
}
