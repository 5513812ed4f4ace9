package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeboxpro/timebox/internal/domain"
)

func moveFixtureSlots() []domain.Slot {
	return []domain.Slot{
		{ID: "9-0", Time: "09:00"},
		{ID: "9-30", Time: "09:30"},
	}
}

func TestMoveTaskOverlay_UnscheduledEntryForScheduledTask(t *testing.T) {
	task := domain.Task{ID: 1, Title: "Deep work"}

	m := NewMoveTaskOverlay(task, moveFixtureSlots(), true)
	view := m.View()
	if !strings.Contains(view, "Unscheduled") {
		t.Error("expected Unscheduled entry for a scheduled task")
	}

	m = NewMoveTaskOverlay(task, moveFixtureSlots(), false)
	view = m.View()
	if strings.Contains(view, "Unscheduled") {
		t.Error("expected no Unscheduled entry for an unscheduled task")
	}
}

func TestMoveTaskOverlay_SelectSlot(t *testing.T) {
	task := domain.Task{ID: 1, Title: "Deep work"}
	m := NewMoveTaskOverlay(task, moveFixtureSlots(), false)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = model.(*MoveTaskOverlay)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from enter")
	}

	var selected *SlotSelectedMsg
	collectMsgs(t, cmd, func(msg tea.Msg) {
		if m, ok := msg.(SlotSelectedMsg); ok {
			selected = &m
		}
	})

	if selected == nil {
		t.Fatal("expected SlotSelectedMsg")
	}
	if selected.TaskID != 1 {
		t.Errorf("expected task 1, got %d", selected.TaskID)
	}
	if selected.SlotID != "9-30" {
		t.Errorf("expected slot 9-30, got %q", selected.SlotID)
	}
}

func TestMoveTaskOverlay_SelectUnscheduled(t *testing.T) {
	task := domain.Task{ID: 1, Title: "Deep work"}
	m := NewMoveTaskOverlay(task, moveFixtureSlots(), true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	var selected *SlotSelectedMsg
	collectMsgs(t, cmd, func(msg tea.Msg) {
		if m, ok := msg.(SlotSelectedMsg); ok {
			selected = &m
		}
	})

	if selected == nil {
		t.Fatal("expected SlotSelectedMsg")
	}
	if selected.SlotID != "" {
		t.Errorf("expected empty slot id for unscheduled target, got %q", selected.SlotID)
	}
}

func TestMoveTaskOverlay_EmptyChoices(t *testing.T) {
	task := domain.Task{ID: 1, Title: "Deep work"}
	m := NewMoveTaskOverlay(task, nil, false)

	view := m.View()
	if !strings.Contains(view, "No free slots") {
		t.Errorf("expected empty-state message, got: %s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command on enter with no choices")
	}
}
