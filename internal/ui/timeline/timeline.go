// Package timeline renders the schedule pane: the day's half-hour slots and
// the tasks placed in them.
package timeline

import (
	"fmt"
	"strings"

	"github.com/timeboxpro/timebox/internal/domain"
	"github.com/timeboxpro/timebox/internal/ui/styles"
)

// Timeline renders the schedule pane
type Timeline struct {
	styles *styles.Styles
}

// New creates a Timeline renderer with the given styles
func New(styles *styles.Styles) *Timeline {
	return &Timeline{styles: styles}
}

// Render renders the slot list. tasksByID resolves slot occupants;
// runningSlotID marks the slot with an active countdown.
func (tm *Timeline) Render(slots []domain.Slot, tasksByID map[int64]domain.Task, cursorIdx int, focused bool, runningSlotID string, width, height int) string {
	var b strings.Builder

	scheduled := 0
	for _, slot := range slots {
		if !slot.Empty() {
			scheduled++
		}
	}
	title := tm.styles.PaneTitle.Render(fmt.Sprintf("Schedule (%d/%d)", scheduled, len(slots)))
	b.WriteString(title)
	b.WriteString("\n")

	visible := height - 2
	if visible < 1 {
		visible = len(slots)
	}
	start := 0
	if cursorIdx >= visible {
		start = cursorIdx - visible + 1
	}

	for i := start; i < len(slots) && i < start+visible; i++ {
		b.WriteString(tm.renderSlot(slots[i], tasksByID, focused && i == cursorIdx, slots[i].ID == runningSlotID, width))
		b.WriteString("\n")
	}

	pane := tm.styles.Pane
	if focused {
		pane = tm.styles.PaneActive
	}
	return pane.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (tm *Timeline) renderSlot(slot domain.Slot, tasksByID map[int64]domain.Task, selected, running bool, width int) string {
	cursor := "  "
	if selected {
		cursor = tm.styles.SlotActive.Render("> ")
	}

	timeCol := tm.styles.SlotTime.Render(slot.Time)

	var body string
	switch {
	case slot.Empty():
		body = tm.styles.SlotEmpty.Render("─")
	default:
		task, ok := tasksByID[slot.TaskID]
		if !ok {
			body = tm.styles.SlotEmpty.Render("─")
			break
		}
		title := task.Title
		maxTitle := width - 16
		if maxTitle > 0 && len(title) > maxTitle {
			title = title[:maxTitle-1] + "…"
		}
		style := tm.styles.SlotFilled
		if task.Completed {
			style = tm.styles.TaskDone
		}
		body = style.Render(title)
		if running {
			body += " " + tm.styles.TimerClock.Render("●")
		}
	}

	return cursor + timeCol + "  " + body
}
