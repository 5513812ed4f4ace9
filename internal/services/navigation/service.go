// Package navigation provides cursor and navigation state management
package navigation

import (
	"github.com/timeboxpro/timebox/internal/domain"
)

// Pane identifies which panel of the layout holds the cursor
type Pane int

const (
	PaneTasks Pane = iota
	PaneSchedule
)

// Cursor tracks the selection in each pane by identity, so it survives
// list reordering and slot reassignment.
type Cursor struct {
	Pane   Pane
	TaskID int64  // selected task in the tasks pane
	SlotID string // selected slot in the schedule pane
}

// TaskIndex computes the cursor's position in the task list. A vanished
// selection falls back to the first task.
func (c *Cursor) TaskIndex(tasks []domain.Task) int {
	for i, t := range tasks {
		if t.ID == c.TaskID {
			return i
		}
	}
	return 0
}

// SlotIndex computes the cursor's position in the slot list, falling back
// to the first slot.
func (c *Cursor) SlotIndex(slots []domain.Slot) int {
	for i, s := range slots {
		if s.ID == c.SlotID {
			return i
		}
	}
	return 0
}

// Service manages navigation state across the two panes.
type Service struct {
	cursor Cursor
}

// NewService creates a navigation service with the cursor on the tasks pane.
func NewService() *Service {
	return &Service{}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// Pane returns the pane currently holding the cursor.
func (s *Service) Pane() Pane {
	return s.cursor.Pane
}

// SwitchPane toggles the cursor between the tasks and schedule panes.
func (s *Service) SwitchPane() {
	if s.cursor.Pane == PaneTasks {
		s.cursor.Pane = PaneSchedule
	} else {
		s.cursor.Pane = PaneTasks
	}
}

// FocusTasks moves the cursor to the tasks pane.
func (s *Service) FocusTasks() {
	s.cursor.Pane = PaneTasks
}

// FocusSchedule moves the cursor to the schedule pane.
func (s *Service) FocusSchedule() {
	s.cursor.Pane = PaneSchedule
}

// CurrentTask returns the selected task, or nil when the list is empty.
func (s *Service) CurrentTask(tasks []domain.Task) *domain.Task {
	if len(tasks) == 0 {
		return nil
	}
	idx := s.cursor.TaskIndex(tasks)
	task := tasks[idx]
	return &task
}

// CurrentSlot returns the selected slot, or nil when the list is empty.
func (s *Service) CurrentSlot(slots []domain.Slot) *domain.Slot {
	if len(slots) == 0 {
		return nil
	}
	idx := s.cursor.SlotIndex(slots)
	slot := slots[idx]
	return &slot
}

// MoveDown moves the cursor down in the active pane, clamped to the end.
func (s *Service) MoveDown(tasks []domain.Task, slots []domain.Slot) {
	s.move(tasks, slots, 1)
}

// MoveUp moves the cursor up in the active pane, clamped to the start.
func (s *Service) MoveUp(tasks []domain.Task, slots []domain.Slot) {
	s.move(tasks, slots, -1)
}

// GotoTop moves the cursor to the first entry of the active pane.
func (s *Service) GotoTop(tasks []domain.Task, slots []domain.Slot) {
	if s.cursor.Pane == PaneTasks {
		if len(tasks) > 0 {
			s.cursor.TaskID = tasks[0].ID
		}
		return
	}
	if len(slots) > 0 {
		s.cursor.SlotID = slots[0].ID
	}
}

// GotoBottom moves the cursor to the last entry of the active pane.
func (s *Service) GotoBottom(tasks []domain.Task, slots []domain.Slot) {
	if s.cursor.Pane == PaneTasks {
		if len(tasks) > 0 {
			s.cursor.TaskID = tasks[len(tasks)-1].ID
		}
		return
	}
	if len(slots) > 0 {
		s.cursor.SlotID = slots[len(slots)-1].ID
	}
}

// SelectTask directly sets the task cursor.
func (s *Service) SelectTask(taskID int64) {
	s.cursor.TaskID = taskID
	s.cursor.Pane = PaneTasks
}

// SelectSlot directly sets the slot cursor.
func (s *Service) SelectSlot(slotID string) {
	s.cursor.SlotID = slotID
	s.cursor.Pane = PaneSchedule
}

func (s *Service) move(tasks []domain.Task, slots []domain.Slot, delta int) {
	if s.cursor.Pane == PaneTasks {
		if len(tasks) == 0 {
			return
		}
		idx := clamp(s.cursor.TaskIndex(tasks)+delta, len(tasks))
		s.cursor.TaskID = tasks[idx].ID
		return
	}
	if len(slots) == 0 {
		return
	}
	idx := clamp(s.cursor.SlotIndex(slots)+delta, len(slots))
	s.cursor.SlotID = slots[idx].ID
}

func clamp(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}
