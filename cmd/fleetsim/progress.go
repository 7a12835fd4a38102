package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/napolitain/fleet-sim/internal/solver/montecarlo"
)

const barWidth = 40

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

type progressMsg struct {
	done, total int
}

type finishedMsg struct {
	summary *montecarlo.Summary
	err     error
}

// progressModel renders a progress bar while a simulation runs and keeps
// its result once the simulation goroutine reports back
type progressModel struct {
	name     string
	done     int
	total    int
	start    time.Time
	stopping bool
	cancel   context.CancelFunc

	summary *montecarlo.Summary
	err     error
}

func newProgressModel(name string, total int, cancel context.CancelFunc) progressModel {
	return progressModel{name: name, total: total, start: time.Now(), cancel: cancel}
}

func newProgressProgram(name string, total int, cancel context.CancelFunc, out io.Writer) *tea.Program {
	return tea.NewProgram(newProgressModel(name, total, cancel), tea.WithOutput(out))
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// keep running until the simulation reports its cancellation
			m.stopping = true
			m.cancel()
		}
	case progressMsg:
		// workers report out of order
		m.done = max(m.done, msg.done)
		m.total = msg.total
	case finishedMsg:
		m.summary, m.err = msg.summary, msg.err
		if m.err == nil {
			m.done = m.total
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) ratio() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.done)/float64(m.total), 1)
}

func (m progressModel) View() string {
	r := m.ratio()
	filled := int(r * barWidth)
	bar := barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))

	status := "q to stop"
	if m.stopping {
		status = "stopping..."
	}

	return fmt.Sprintf("%s\n%s %3.0f%%  %d/%d trials  %s\n%s\n",
		m.name,
		bar, r*100, m.done, m.total,
		time.Since(m.start).Round(100*time.Millisecond),
		hintStyle.Render(status),
	)
}
