package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the styles every renderer pulls from.
type Theme struct {
	Name     string
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Pending  lipgloss.Style
	Selected lipgloss.Style
	TabOn    lipgloss.Style
	TabOff   lipgloss.Style
	Border   lipgloss.Border
	BorderFg lipgloss.Color

	SymOK, SymFail string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		TabOn:    lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),
		TabOff:   lipgloss.NewStyle().Faint(true).Padding(0, 1),
		Border:   lipgloss.RoundedBorder(),
		BorderFg: lipgloss.Color("8"),
		SymOK:    "✔",
		SymFail:  "✖",
	}
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.TabOn = t.TabOn.Foreground(lipgloss.Color("13"))
		t.BorderFg = lipgloss.Color("13")
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:     "mono",
			Title:    plain,
			Muted:    plain,
			Accent:   plain,
			Success:  plain,
			Error:    plain,
			Pending:  plain,
			Selected: plain,
			TabOn:    plain.Padding(0, 1),
			TabOff:   plain.Padding(0, 1),
			Border:   lipgloss.NormalBorder(),
			SymOK:    "ok",
			SymFail:  "error:",
		}
	default:
		current = classic()
	}
}

func Current() Theme { return current }
