// Package tasklist renders the task pane: all tasks with their state,
// duration and badges.
package tasklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxpro/timebox/internal/domain"
	"github.com/timeboxpro/timebox/internal/ui/styles"
)

// TaskList renders the tasks pane
type TaskList struct {
	styles *styles.Styles
}

// New creates a TaskList renderer with the given styles
func New(styles *styles.Styles) *TaskList {
	return &TaskList{styles: styles}
}

// Render renders the task pane. cursorIdx is the highlighted row when the
// pane is focused; scheduled marks tasks already placed in the grid.
func (tl *TaskList) Render(tasks []domain.Task, cursorIdx int, focused bool, scheduled map[int64]struct{}, width, height int) string {
	var b strings.Builder

	title := tl.styles.PaneTitle.Render(fmt.Sprintf("Tasks (%d)", len(tasks)))
	b.WriteString(title)
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(tl.styles.PaneSubtitle.Render("No tasks yet. Press n to create one."))
	}

	visible := height - 2
	if visible < 1 {
		visible = len(tasks)
	}
	start := 0
	if cursorIdx >= visible {
		start = cursorIdx - visible + 1
	}

	for i := start; i < len(tasks) && i < start+visible; i++ {
		b.WriteString(tl.renderRow(tasks[i], focused && i == cursorIdx, scheduled, width))
		b.WriteString("\n")
	}

	pane := tl.styles.Pane
	if focused {
		pane = tl.styles.PaneActive
	}
	return pane.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (tl *TaskList) renderRow(task domain.Task, selected bool, scheduled map[int64]struct{}, width int) string {
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}

	marker := " "
	if _, ok := scheduled[task.ID]; ok {
		marker = "•"
	}

	titleStyle := tl.styles.TaskTitle
	if task.Completed {
		titleStyle = tl.styles.TaskDone
	}

	title := task.Title
	maxTitle := width - 24
	if maxTitle > 0 && len(title) > maxTitle {
		title = title[:maxTitle-1] + "…"
	}

	row := lipgloss.JoinHorizontal(lipgloss.Left,
		check+" "+marker+" ",
		titleStyle.Render(title),
		" ",
		tl.styles.TaskMeta.Render(task.DurationLabel()),
		" ",
		tl.styles.PriorityBadge(task.Priority).Render(task.Priority.Short()),
		" ",
		tl.styles.CategoryBadge(task.Category).Render(task.Category.String()),
	)

	if selected {
		return tl.styles.TaskRowActive.Render("> ") + row
	}
	return tl.styles.TaskRow.Render("  ") + row
}
