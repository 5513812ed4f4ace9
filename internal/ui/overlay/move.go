package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeboxpro/timebox/internal/domain"
)

// SlotSelectedMsg is emitted when a target slot is picked for a task
type SlotSelectedMsg struct {
	TaskID int64
	SlotID string
}

// moveChoice is one row of the picker: a real slot or the unscheduled
// pseudo-target.
type moveChoice struct {
	slotID string
	label  string
}

// MoveTaskOverlay lets the user pick a free slot for a task, or send it
// back to the unscheduled pool.
type MoveTaskOverlay struct {
	task     domain.Task
	choices  []moveChoice
	cursor   int
	styles   *Styles
	viewRows int
}

// NewMoveTaskOverlay creates a slot picker for the given task. slots are
// the candidate targets; scheduled tasks also get an "Unscheduled" entry.
func NewMoveTaskOverlay(task domain.Task, slots []domain.Slot, scheduled bool) *MoveTaskOverlay {
	var choices []moveChoice
	if scheduled {
		choices = append(choices, moveChoice{slotID: "", label: "Unscheduled"})
	}
	for _, slot := range slots {
		choices = append(choices, moveChoice{slotID: slot.ID, label: slot.Time})
	}

	return &MoveTaskOverlay{
		task:     task,
		choices:  choices,
		styles:   New(),
		viewRows: 14,
	}
}

// Init initializes the overlay
func (m *MoveTaskOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *MoveTaskOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
			return m, nil

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "g":
			m.cursor = 0
			return m, nil

		case "G":
			m.cursor = len(m.choices) - 1
			return m, nil

		case "enter":
			if len(m.choices) == 0 {
				return m, nil
			}
			choice := m.choices[m.cursor]
			return m, tea.Batch(
				func() tea.Msg {
					return SlotSelectedMsg{TaskID: m.task.ID, SlotID: choice.slotID}
				},
				func() tea.Msg { return CloseOverlayMsg{} },
			)
		}
	}

	return m, nil
}

// View renders the slot picker
func (m *MoveTaskOverlay) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Value.Render(m.task.Title))
	b.WriteString("\n\n")

	if len(m.choices) == 0 {
		b.WriteString(m.styles.MenuItemDisabled.Render("No free slots left today."))
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("Esc: Close"))
		return b.String()
	}

	start := 0
	if m.cursor >= m.viewRows {
		start = m.cursor - m.viewRows + 1
	}
	end := start + m.viewRows
	if end > len(m.choices) {
		end = len(m.choices)
	}

	for i := start; i < end; i++ {
		choice := m.choices[i]
		style := m.styles.MenuItem
		cursor := "  "
		if i == m.cursor {
			style = m.styles.MenuItemActive
			cursor = "> "
		}
		b.WriteString(style.Render(cursor + choice.label))
		b.WriteString("\n")
	}

	if len(m.choices) > m.viewRows {
		b.WriteString(m.styles.Footer.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.choices))))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("j/k: Move • Enter: Select • Esc: Cancel"))
	return b.String()
}

// Title returns the overlay title
func (m *MoveTaskOverlay) Title() string {
	return "Move Task"
}

// Size returns the overlay dimensions
func (m *MoveTaskOverlay) Size() (width, height int) {
	return 40, m.viewRows + 8
}
