package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 36

// styles are derived from the active theme and rebuilt when it changes.
type styles struct {
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	on     lipgloss.Style
	off    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(panelWidth - 1),
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Accent),
		help:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		on:     lipgloss.NewStyle().Foreground(t.On).Bold(true),
		off:    lipgloss.NewStyle().Foreground(t.Off).Bold(true),
	}
}

// motionBadge renders the motion indicator shown in the panel.
func (s styles) motionBadge(enabled bool, source string) string {
	if enabled {
		return s.on.Render("● MOTION ON") + " " + s.label.UnsetWidth().Render("("+source+")")
	}
	return s.off.Render("○ MOTION OFF") + " " + s.label.UnsetWidth().Render("("+source+")")
}

// separator renders a dim horizontal rule.
func (s styles) separator(width int) string {
	if width < 1 {
		return ""
	}
	return s.label.UnsetWidth().Render(strings.Repeat("─", width))
}
