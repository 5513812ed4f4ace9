// Package timerpanel renders the focus session panel: the countdown, the
// task being timed, and a progress bar.
package timerpanel

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/timeboxpro/timebox/internal/domain"
	"github.com/timeboxpro/timebox/internal/ui/styles"
)

// TimerPanel renders the focus session panel
type TimerPanel struct {
	styles   *styles.Styles
	progress progress.Model
}

// New creates a TimerPanel renderer with the given styles
func New(st *styles.Styles) *TimerPanel {
	bar := progress.New(
		progress.WithGradient(string(styles.Green), string(styles.Blue)),
		progress.WithoutPercentage(),
	)
	return &TimerPanel{styles: st, progress: bar}
}

// Render renders the panel. When task is nil the panel shows an idle hint.
func (tp *TimerPanel) Render(task *domain.Task, slotTime, remainingLabel string, pct float64, width int) string {
	var b strings.Builder

	b.WriteString(tp.styles.PaneTitle.Render("Focus"))
	b.WriteString("\n")

	if task == nil {
		b.WriteString(tp.styles.TimerIdle.Render("No session running. Select a slot and press s."))
		return tp.styles.Pane.Width(width).Render(b.String())
	}

	b.WriteString(tp.styles.TimerLabel.Render(slotTime + "  "))
	b.WriteString(tp.styles.TaskTitle.Render(task.Title))
	b.WriteString("\n")
	b.WriteString(tp.styles.TimerClock.Render(remainingLabel))
	b.WriteString("\n")

	tp.progress.Width = width - 6
	if tp.progress.Width < 10 {
		tp.progress.Width = 10
	}
	b.WriteString(tp.progress.ViewAs(pct))

	return tp.styles.PaneActive.Width(width).Render(b.String())
}
