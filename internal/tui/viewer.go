// File: internal/tui/viewer.go
// Project: EC4X Engine
// Description: Thin terminal status viewer over a PlayerState snapshot, out of scope as a full client
// Version: 1.0.0
// Created: 2026-07-30

// Package tui is a deliberately thin illustrative status viewer, not a
// game client — the terminal UI a player would actually use is its own,
// separately built piece of software. It exists to keep the
// bubbletea/lipgloss terminal stack wired to a real read path rather than
// left unexercised: one screen, read-only, rendering the cross-cutting
// fields of an intel.PlayerState snapshot.
package tui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/intel"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// Model is a static, non-interactive bubbletea model over one house's
// PlayerState; it renders once and quits on any keypress.
type Model struct {
	state *intel.PlayerState
}

// NewModel wraps a PlayerState snapshot for display.
func NewModel(state *intel.PlayerState) Model {
	return Model{state: state}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	s := m.state
	if s == nil {
		return "no state loaded\n"
	}

	out := titleStyle.Render(fmt.Sprintf("EC4X — house %d, turn %d", s.HouseID, s.Turn)) + "\n\n"

	out += headStyle.Render("Colonies") + "\n"
	for _, c := range s.OwnColonies {
		out += fmt.Sprintf("  system %d  pop=%d  iu=%d\n", c.SystemID, c.Population, c.IU)
	}
	if len(s.OwnColonies) == 0 {
		out += dimStyle.Render("  (none)") + "\n"
	}

	out += "\n" + headStyle.Render("Fleets") + "\n"
	for _, f := range s.OwnFleets {
		out += fmt.Sprintf("  fleet %d at system %d (%d squadrons)\n", f.ID, f.Location, len(f.SquadronIDs))
	}
	if len(s.OwnFleets) == 0 {
		out += dimStyle.Render("  (none)") + "\n"
	}

	out += "\n" + headStyle.Render("Prestige standings") + "\n"
	houseIDs := make([]ids.HouseId, 0, len(s.Prestige))
	for h := range s.Prestige {
		houseIDs = append(houseIDs, h)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i] < houseIDs[j] })
	for _, h := range houseIDs {
		name := s.HouseNames[h]
		out += fmt.Sprintf("  %-16s %d\n", name, s.Prestige[h])
	}

	out += "\n" + dimStyle.Render("press any key to exit")
	return out
}

// Run blocks until the viewer is dismissed. Intended for a one-shot CLI
// invocation (e.g. "ec4xd status --tui"), not a persistent session.
func Run(state *intel.PlayerState) error {
	_, err := tea.NewProgram(NewModel(state)).Run()
	return err
}
