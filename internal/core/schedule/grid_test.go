package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxpro/timebox/internal/domain"
)

func TestGenerateSlots(t *testing.T) {
	slots := GenerateSlots()
	require.Len(t, slots, SlotCount)
	require.Len(t, slots, 34)

	assert.Equal(t, "6-0", slots[0].ID)
	assert.Equal(t, "06:00", slots[0].Time)
	assert.Equal(t, "6-30", slots[1].ID)
	assert.Equal(t, "22-30", slots[33].ID)
	assert.Equal(t, "22:30", slots[33].Time)

	for _, slot := range slots {
		assert.True(t, slot.Empty())
	}
}

func TestAssignAndFind(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.Assign("9-0", 1))

	slot, ok := g.SlotByID("9-0")
	require.True(t, ok)
	assert.Equal(t, int64(1), slot.TaskID)

	slotID, ok := g.FindTask(1)
	require.True(t, ok)
	assert.Equal(t, "9-0", slotID)
}

func TestAssignMovesTask(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.Assign("9-0", 1))
	require.NoError(t, g.Assign("14-30", 1))

	old, _ := g.SlotByID("9-0")
	assert.True(t, old.Empty())

	slotID, ok := g.FindTask(1)
	require.True(t, ok)
	assert.Equal(t, "14-30", slotID)

	// Exactly one slot holds the task
	count := 0
	for _, slot := range g.Slots() {
		if slot.TaskID == 1 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAssignSameSlotIdempotent(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.Assign("9-0", 1))
	require.NoError(t, g.Assign("9-0", 1))

	slotID, ok := g.FindTask(1)
	require.True(t, ok)
	assert.Equal(t, "9-0", slotID)
}

func TestAssignReplacesOccupant(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.Assign("9-0", 1))
	require.NoError(t, g.Assign("9-0", 2))

	slot, _ := g.SlotByID("9-0")
	assert.Equal(t, int64(2), slot.TaskID)

	_, placed := g.FindTask(1)
	assert.False(t, placed)
}

func TestAssignUnknownSlot(t *testing.T) {
	g := NewGrid()

	err := g.Assign("25-0", 1)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAssignZeroTask(t *testing.T) {
	g := NewGrid()

	err := g.Assign("9-0", 0)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAssignUnscheduledSentinel(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.Assign("9-0", 1))
	require.NoError(t, g.Assign(UnscheduledSlotID, 1))

	_, placed := g.FindTask(1)
	assert.False(t, placed)
}

func TestUnassign(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.Assign("9-0", 1))
	assert.True(t, g.Unassign(1))
	assert.False(t, g.Unassign(1))

	slot, _ := g.SlotByID("9-0")
	assert.True(t, slot.Empty())
}

func TestAvailable(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.Assign("9-0", 1))
	require.NoError(t, g.Assign("10-0", 2))

	free := g.Available(0)
	assert.Len(t, free, SlotCount-2)

	// Excluding a task includes its own slot
	forMove := g.Available(1)
	assert.Len(t, forMove, SlotCount-1)
	found := false
	for _, slot := range forMove {
		if slot.ID == "9-0" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScheduledIDs(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.Assign("9-0", 1))
	require.NoError(t, g.Assign("10-0", 2))

	ids := g.ScheduledIDs()
	assert.Equal(t, map[int64]struct{}{1: {}, 2: {}}, ids)
}

func TestRestore(t *testing.T) {
	g := NewGrid()

	g.Restore(map[string]int64{
		"9-0":   1,
		"10-0":  2,
		"bogus": 3,
		"11-0":  4, // task no longer exists
	}, func(id int64) bool { return id != 4 })

	slotID, ok := g.FindTask(1)
	require.True(t, ok)
	assert.Equal(t, "9-0", slotID)

	_, ok = g.FindTask(3)
	assert.False(t, ok)
	_, ok = g.FindTask(4)
	assert.False(t, ok)
}

func TestRestoreDuplicateTaskKeepsFirst(t *testing.T) {
	g := NewGrid()

	g.Restore(map[string]int64{
		"9-0":  1,
		"10-0": 1,
	}, nil)

	count := 0
	for _, slot := range g.Slots() {
		if slot.TaskID == 1 {
			count++
		}
	}
	assert.Equal(t, 1, count)

	slotID, _ := g.FindTask(1)
	assert.Equal(t, "9-0", slotID)
}
