package timeline

import (
	"strings"
	"testing"

	"github.com/timeboxpro/timebox/internal/domain"
	"github.com/timeboxpro/timebox/internal/ui/styles"
)

func testSlots() []domain.Slot {
	return []domain.Slot{
		{ID: "9-0", Time: "09:00", TaskID: 1},
		{ID: "9-30", Time: "09:30"},
		{ID: "10-0", Time: "10:00", TaskID: 2},
	}
}

func testTasks() map[int64]domain.Task {
	return map[int64]domain.Task{
		1: {ID: 1, Title: "Deep work", DurationMinutes: 30},
		2: {ID: 2, Title: "Review PRs", DurationMinutes: 30, Completed: true},
	}
}

func TestRenderShowsSlotsAndOccupants(t *testing.T) {
	tm := New(styles.New())

	result := tm.Render(testSlots(), testTasks(), 0, true, "", 60, 20)

	if !strings.Contains(result, "Schedule (2/3)") {
		t.Errorf("Expected occupancy header, got: %s", result)
	}
	if !strings.Contains(result, "09:00") || !strings.Contains(result, "09:30") {
		t.Errorf("Expected slot times, got: %s", result)
	}
	if !strings.Contains(result, "Deep work") {
		t.Errorf("Expected occupant title, got: %s", result)
	}
	if !strings.Contains(result, "Review PRs") {
		t.Errorf("Expected second occupant title, got: %s", result)
	}
}

func TestRenderEmptySlotPlaceholder(t *testing.T) {
	tm := New(styles.New())

	result := tm.Render(testSlots(), testTasks(), 0, false, "", 60, 20)

	if !strings.Contains(result, "─") {
		t.Errorf("Expected empty slot placeholder, got: %s", result)
	}
}

func TestRenderRunningMarker(t *testing.T) {
	tm := New(styles.New())

	result := tm.Render(testSlots(), testTasks(), 0, true, "9-0", 60, 20)

	if !strings.Contains(result, "●") {
		t.Errorf("Expected running marker on active slot, got: %s", result)
	}
}

func TestRenderStaleReferenceFallsBackToEmpty(t *testing.T) {
	tm := New(styles.New())
	slots := []domain.Slot{{ID: "9-0", Time: "09:00", TaskID: 99}}

	result := tm.Render(slots, testTasks(), 0, false, "", 60, 20)

	if !strings.Contains(result, "─") {
		t.Errorf("Expected stale slot rendered as empty, got: %s", result)
	}
}
