// Package statusbar renders the bottom status line of the TUI.
package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxpro/timebox/internal/types"
	"github.com/timeboxpro/timebox/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	info   string
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithInfo returns a copy carrying an info segment, e.g. the running
// countdown or today's date.
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	segments := []string{modeBadge}
	separator := sb.styles.StatusHint.Render(" │ ")

	if sb.info != "" {
		segments = append(segments, separator, sb.styles.StatusInfo.Render(sb.info))
	}

	if hints := GetHints(sb.mode); hints != "" {
		segments = append(segments, separator, sb.styles.StatusHint.Render(hints))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, segments...)
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
