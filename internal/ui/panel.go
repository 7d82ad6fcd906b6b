package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func OK(msg string) {
	t := Current()
	fmt.Println(t.Success.Render(t.SymOK + " " + msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(os.Stderr, t.Error.Render(t.SymFail+" "+msg))
}

// PanelString frames inner with the current theme's border.
func PanelString(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderFg).
		Padding(0, 1).
		Render(inner)
}

// Panel prints lines inside a framed box.
func Panel(lines []string) {
	fmt.Println(PanelString(strings.Join(lines, "\n")))
}

// Table lays out rows in left-aligned columns under a header row. Cells
// are measured by display width so styled text lines up.
func Table(header []string, rows [][]string) []string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i := 0; i < len(r) && i < len(widths); i++ {
			if w := lipgloss.Width(r[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	t := Current()
	out := make([]string, 0, len(rows)+1)
	out = append(out, t.Title.Render(line(header)))
	for _, r := range rows {
		out = append(out, line(r))
	}
	return out
}

// Truncate shortens s to max display cells, ending in "...".
func Truncate(s string, max int) string {
	if max <= 3 || lipgloss.Width(s) <= max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > max-3 {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
