// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package tui renders a live trim-progress view with bubbletea/lipgloss,
// wired to a trim.Observer (§4.10's "expose survivor counts per round via
// an observer callback"). It is a thin, solver-specific sibling of the
// chat/menu UI in the example hasher CLI — one scrolling bar per pass
// instead of a full menu system, since a solver run has nothing to
// navigate.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#34D399")).
			Padding(0, 2).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Bold(true)
)

// PassUpdate is one progress tick, matching a trim.Observer callback's
// arguments.
type PassUpdate struct {
	Pass      int
	Kind      string
	Survivors int
}

// doneMsg is sent once the driving goroutine has no more updates to report.
type doneMsg struct{}

// Model is the bubbletea model for one solve run's progress view.
type Model struct {
	seeded int
	log    []PassUpdate
	width  int
	done   bool

	updates <-chan PassUpdate
}

// NewModel builds a Model that reads progress updates from updates until
// it is closed.
func NewModel(updates <-chan PassUpdate) Model {
	return Model{updates: updates, width: 60}
}

// Observer returns a trim.Observer-compatible callback (pass int, kind
// string, survivors int) that forwards every call onto ch. The caller
// closes ch once the pipeline finishes to let the TUI's Init command
// terminate.
func Observer(ch chan<- PassUpdate) func(pass int, kind string, survivors int) {
	return func(pass int, kind string, survivors int) {
		ch <- PassUpdate{Pass: pass, Kind: kind, Survivors: survivors}
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return doneMsg{}
		}
		return update
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.width = msg.Width - 10
		}

	case PassUpdate:
		if msg.Kind == "seed" {
			m.seeded = msg.Survivors
		}
		m.log = append(m.log, msg)
		return m, m.waitForUpdate()

	case doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("cuckatoo-solver: trim progress"))
	b.WriteString("\n\n")

	if m.seeded > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("seeded %d edges", m.seeded)))
		b.WriteString("\n\n")
	}

	base := m.seeded
	for _, u := range m.log {
		b.WriteString(m.renderBar(u, base))
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString("\n")
		b.WriteString(doneStyle.Render("done"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderBar(u PassUpdate, base int) string {
	frac := 1.0
	if base > 0 {
		frac = float64(u.Survivors) / float64(base)
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(m.width))
	bar := barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", m.width-filled)

	return fmt.Sprintf("%-6s pass %-3d %s %d", u.Kind, u.Pass, bar, u.Survivors)
}
