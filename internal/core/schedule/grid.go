// Package schedule implements the daily schedule grid and its persistence
// round trip.
package schedule

import (
	"fmt"
	"sync"

	"github.com/timeboxpro/timebox/internal/domain"
)

const (
	// DayStartHour is the hour of the first slot.
	DayStartHour = 6
	// DayEndHour is the exclusive end of the grid; the last slot starts at 22:30.
	DayEndHour = 23
	// SlotMinutes is the length of one slot.
	SlotMinutes = 30
	// SlotCount is the number of slots in a day: 17 hours * 2.
	SlotCount = (DayEndHour - DayStartHour) * 2
)

// UnscheduledSlotID is the pseudo-slot target meaning "remove from the grid".
const UnscheduledSlotID = "unscheduled"

// GenerateSlots builds the canonical empty day: 34 half-hour slots from
// 06:00 through 22:30.
func GenerateSlots() []domain.Slot {
	slots := make([]domain.Slot, 0, SlotCount)
	for hour := DayStartHour; hour < DayEndHour; hour++ {
		for _, minute := range []int{0, 30} {
			slots = append(slots, domain.Slot{
				ID:   fmt.Sprintf("%d-%d", hour, minute),
				Time: fmt.Sprintf("%02d:%02d", hour, minute),
			})
		}
	}
	return slots
}

// Grid holds the in-memory schedule for one day. A task occupies at most
// one slot; assigning an already-placed task moves it.
type Grid struct {
	mu    sync.RWMutex
	slots []domain.Slot
}

// NewGrid returns an empty grid with the canonical slot layout.
func NewGrid() *Grid {
	return &Grid{slots: GenerateSlots()}
}

// Assign places taskID into the slot with the given id, clearing the task
// from any slot it currently occupies. Assigning to UnscheduledSlotID is a
// pure unassign. Assigning a task to its own slot is a no-op.
func (g *Grid) Assign(slotID string, taskID int64) error {
	if taskID == 0 {
		return &domain.ValidationError{Field: "task", Reason: "missing task id"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if slotID == UnscheduledSlotID {
		g.unassignLocked(taskID)
		return nil
	}

	target := -1
	for i := range g.slots {
		if g.slots[i].ID == slotID {
			target = i
			break
		}
	}
	if target == -1 {
		return &domain.ValidationError{Field: "slot", Reason: fmt.Sprintf("unknown slot %q", slotID)}
	}

	g.unassignLocked(taskID)
	g.slots[target].TaskID = taskID
	return nil
}

// Unassign removes the task from the grid, reporting whether it was placed.
func (g *Grid) Unassign(taskID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unassignLocked(taskID)
}

func (g *Grid) unassignLocked(taskID int64) bool {
	for i := range g.slots {
		if g.slots[i].TaskID == taskID {
			g.slots[i].TaskID = 0
			return true
		}
	}
	return false
}

// SlotByID returns the slot with the given id.
func (g *Grid) SlotByID(id string) (domain.Slot, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, slot := range g.slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

// FindTask returns the id of the slot holding the task, if any.
func (g *Grid) FindTask(taskID int64) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, slot := range g.slots {
		if slot.TaskID == taskID {
			return slot.ID, true
		}
	}
	return "", false
}

// Available returns the empty slots, plus the slot currently holding
// excludingTaskID so a move dialog can offer the task's own position.
func (g *Grid) Available(excludingTaskID int64) []domain.Slot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []domain.Slot
	for _, slot := range g.slots {
		if slot.Empty() || (excludingTaskID != 0 && slot.TaskID == excludingTaskID) {
			out = append(out, slot)
		}
	}
	return out
}

// ScheduledIDs returns the set of task ids currently placed in slots.
func (g *Grid) ScheduledIDs() map[int64]struct{} {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[int64]struct{})
	for _, slot := range g.slots {
		if !slot.Empty() {
			out[slot.TaskID] = struct{}{}
		}
	}
	return out
}

// Slots returns a copy of the grid's slots in display order.
func (g *Grid) Slots() []domain.Slot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Slot, len(g.slots))
	copy(out, g.slots)
	return out
}

// Restore rebuilds the grid from a stored snapshot. Assignments whose slot
// id is unknown or whose task no longer exists are dropped; if a task
// appears in several slots only the first canonical slot keeps it.
func (g *Grid) Restore(assignments map[string]int64, exists func(int64) bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.slots = GenerateSlots()
	seen := make(map[int64]struct{})
	for i := range g.slots {
		taskID, ok := assignments[g.slots[i].ID]
		if !ok || taskID == 0 {
			continue
		}
		if exists != nil && !exists(taskID) {
			continue
		}
		if _, dup := seen[taskID]; dup {
			continue
		}
		seen[taskID] = struct{}{}
		g.slots[i].TaskID = taskID
	}
}

// restore swaps the grid back to a previously captured snapshot.
func (g *Grid) restore(slots []domain.Slot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.slots = make([]domain.Slot, len(slots))
	copy(g.slots, slots)
}
