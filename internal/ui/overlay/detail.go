package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeboxpro/timebox/internal/domain"
)

// DetailOverlay shows a task's fields and its session history.
type DetailOverlay struct {
	task     domain.Task
	sessions []domain.Session
	slotTime string
	styles   *Styles
}

// NewDetailOverlay creates a read-only detail view. slotTime is empty for
// an unscheduled task.
func NewDetailOverlay(task domain.Task, sessions []domain.Session, slotTime string) *DetailOverlay {
	return &DetailOverlay{
		task:     task,
		sessions: sessions,
		slotTime: slotTime,
		styles:   New(),
	}
}

// Init initializes the overlay
func (d *DetailOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *DetailOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return d, func() tea.Msg { return CloseOverlayMsg{} }
		}
	}
	return d, nil
}

// View renders the detail view
func (d *DetailOverlay) View() string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render(d.task.Title))
	b.WriteString("\n")

	if d.task.Description != "" {
		b.WriteString(d.styles.Value.Render(d.task.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	writeField := func(label, value string) {
		b.WriteString(d.styles.Label.Render(label))
		b.WriteString(" ")
		b.WriteString(d.styles.Value.Render(value))
		b.WriteString("\n")
	}

	writeField("Duration:", d.task.DurationLabel())
	writeField("Priority:", d.task.Priority.String())
	writeField("Category:", d.task.Category.String())
	if d.slotTime != "" {
		writeField("Scheduled:", d.slotTime)
	} else {
		writeField("Scheduled:", "no")
	}
	if d.task.Completed {
		status := "done"
		if d.task.CompletedAt != nil {
			status = "done at " + d.task.CompletedAt.Format("15:04")
		}
		writeField("Status:", status)
	} else {
		writeField("Status:", "open")
	}

	b.WriteString("\n")
	b.WriteString(d.styles.Separator.Render(strings.Repeat("─", 50)))
	b.WriteString("\n")
	b.WriteString(d.styles.Label.Render(fmt.Sprintf("Sessions (%d)", len(d.sessions))))
	b.WriteString("\n")

	if len(d.sessions) == 0 {
		b.WriteString(d.styles.MenuItemDisabled.Render("No sessions recorded yet."))
		b.WriteString("\n")
	}

	shown := d.sessions
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, sess := range shown {
		line := fmt.Sprintf("%s  %s  %s",
			sess.Date,
			formatSeconds(sess.DurationSeconds),
			sess.Notes,
		)
		b.WriteString(d.styles.MenuItem.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(d.styles.Footer.Render("Esc: Close"))
	return b.String()
}

func formatSeconds(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

// Title returns the overlay title
func (d *DetailOverlay) Title() string {
	return "Task Details"
}

// Size returns the overlay dimensions
func (d *DetailOverlay) Size() (width, height int) {
	return 60, 22
}
