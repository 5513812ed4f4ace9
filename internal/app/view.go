package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxpro/timebox/internal/domain"
	"github.com/timeboxpro/timebox/internal/services/navigation"
	"github.com/timeboxpro/timebox/internal/ui/statusbar"
	"github.com/timeboxpro/timebox/internal/ui/toast"
)

// Height reserved for the timer panel at the bottom of the screen.
const timerPanelHeight = 6

// View renders the whole screen: task list and schedule side by side,
// timer panel and status bar below, overlays and toasts on top.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.loading {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			m.spinner.View()+" Loading tasks...",
		)
	}

	visible := m.visibleTasks()
	slots := m.slots()
	cursor := m.nav.GetCursor()

	leftWidth := m.width * 2 / 5
	rightWidth := m.width - leftWidth
	paneHeight := m.height - timerPanelHeight - 1
	if paneHeight < 3 {
		paneHeight = 3
	}

	tasksView := m.taskList.Render(
		visible,
		cursor.TaskIndex(visible),
		m.nav.Pane() == navigation.PaneTasks,
		m.schedule.Grid().ScheduledIDs(),
		leftWidth,
		paneHeight,
	)

	runningSlot := ""
	if m.engine.Running() {
		runningSlot = m.engine.SlotID()
	}
	scheduleView := m.timeLine.Render(
		slots,
		m.tasksByID(),
		cursor.SlotIndex(slots),
		m.nav.Pane() == navigation.PaneSchedule,
		runningSlot,
		rightWidth,
		paneHeight,
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, tasksView, scheduleView)
	panelView := m.renderTimerPanel()

	sb := statusbar.New(m.mode, m.width, m.styles)
	if m.engine.Running() {
		sb = sb.WithInfo("▶ " + m.engine.RemainingLabel())
	}

	view := lipgloss.JoinVertical(lipgloss.Left, panes, panelView, sb.Render())

	// If an overlay is open, render it centered on top
	if !m.overlayStack.IsEmpty() {
		current := m.overlayStack.Current()
		overlayView := current.View()
		overlayWidth, overlayHeight := current.Size()

		title := current.Title()
		if title != "" {
			titleView := m.styles.OverlayTitle.Render(title)
			overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
		}
		overlayView = m.styles.Overlay.
			Width(overlayWidth).
			Height(overlayHeight).
			Render(overlayView)

		view = lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			overlayView,
		)
	}

	// Toasts go below everything, right-aligned
	if len(m.toasts) > 0 {
		toastRenderer := toast.New(m.styles)
		toastView := toastRenderer.Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

func (m Model) renderTimerPanel() string {
	var task *domain.Task
	slotTime := ""
	if m.engine.Running() {
		byID := m.tasksByID()
		if t, ok := byID[m.engine.TaskID()]; ok {
			task = &t
		}
		if slot, ok := m.schedule.Grid().SlotByID(m.engine.SlotID()); ok {
			slotTime = slot.Time
		}
	}
	return m.timerPanel.Render(task, slotTime, m.engine.RemainingLabel(), m.engine.Progress(), m.width)
}
