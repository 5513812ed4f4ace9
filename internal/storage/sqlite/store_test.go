package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxpro/timebox/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTask(title string) domain.Task {
	return domain.Task{
		Title:           title,
		DurationMinutes: 30,
		Priority:        domain.PriorityMedium,
		Category:        domain.CategoryGeneral,
		Color:           "#8aadf4",
		CreatedAt:       time.Now(),
	}
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}

func TestTasksCreateAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.TasksCreate(ctx, newTask("Write report"))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := store.TasksGet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, 30, got.DurationMinutes)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestTasksGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.TasksGet(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTasksListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := newTask("first")
	first.CreatedAt = time.Now().Add(-time.Hour)
	_, err := store.TasksCreate(ctx, first)
	require.NoError(t, err)

	_, err = store.TasksCreate(ctx, newTask("second"))
	require.NoError(t, err)

	tasks, err := store.TasksList(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "second", tasks[0].Title)
	assert.Equal(t, "first", tasks[1].Title)
}

func TestTasksSetCompleted(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.TasksCreate(ctx, newTask("task"))
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, store.TasksSetCompleted(ctx, id, true, &now))

	got, err := store.TasksGet(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)

	// Un-complete clears the timestamp
	require.NoError(t, store.TasksSetCompleted(ctx, id, false, nil))
	got, err = store.TasksGet(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestTasksSetCompletedMissing(t *testing.T) {
	store := openTestStore(t)

	err := store.TasksSetCompleted(context.Background(), 42, true, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTasksDeleteCascades(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.TasksCreate(ctx, newTask("doomed"))
	require.NoError(t, err)

	start := time.Now()
	_, err = store.SessionsCreate(ctx, domain.Session{
		TaskID:    id,
		StartTime: start,
		Date:      domain.DateKey(start),
	})
	require.NoError(t, err)

	date := domain.DateKey(start)
	require.NoError(t, store.SlotsReplaceAll(ctx, date, []domain.Slot{
		{ID: "6-0", Time: "06:00", TaskID: id},
		{ID: "6-30", Time: "06:30"},
	}))

	require.NoError(t, store.TasksDelete(ctx, id))

	_, err = store.TasksGet(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sessions, err := store.SessionsListByTask(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	slots, err := store.SlotsGetByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	for _, slot := range slots {
		assert.True(t, slot.Empty())
	}
}

func TestTasksDeleteMissingIsNoop(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.TasksDelete(context.Background(), 123))
}

func TestSessionsLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	taskID, err := store.TasksCreate(ctx, newTask("task"))
	require.NoError(t, err)

	start := time.Now()
	sess := domain.Session{
		TaskID:    taskID,
		StartTime: start,
		Date:      domain.DateKey(start),
	}
	id, err := store.SessionsCreate(ctx, sess)
	require.NoError(t, err)

	got, err := store.SessionsGet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, taskID, got.TaskID)
	assert.Nil(t, got.EndTime)
	assert.False(t, got.Completed)

	end := start.Add(25 * time.Minute)
	got.EndTime = &end
	got.DurationSeconds = 1500
	got.Completed = true
	got.Notes = domain.NoteTimerCompleted
	require.NoError(t, store.SessionsUpdate(ctx, got))

	got, err = store.SessionsGet(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.EndTime)
	assert.Equal(t, 1500, got.DurationSeconds)
	assert.True(t, got.Completed)
	assert.Equal(t, domain.NoteTimerCompleted, got.Notes)
}

func TestSessionsUpdateMissing(t *testing.T) {
	store := openTestStore(t)

	err := store.SessionsUpdate(context.Background(), domain.Session{ID: 7})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionsDeleteByTask(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	keep, err := store.TasksCreate(ctx, newTask("keep"))
	require.NoError(t, err)
	purge, err := store.TasksCreate(ctx, newTask("purge"))
	require.NoError(t, err)

	start := time.Now()
	for _, taskID := range []int64{keep, purge, purge} {
		_, err = store.SessionsCreate(ctx, domain.Session{
			TaskID:    taskID,
			StartTime: start,
			Date:      domain.DateKey(start),
		})
		require.NoError(t, err)
	}

	require.NoError(t, store.SessionsDeleteByTask(ctx, purge))

	gone, err := store.SessionsListByTask(ctx, purge)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := store.SessionsListByTask(ctx, keep)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	// The task itself stays
	_, err = store.TasksGet(ctx, purge)
	assert.NoError(t, err)
}

func TestSlotsReplaceAllOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	date := "2026-08-29"

	require.NoError(t, store.SlotsReplaceAll(ctx, date, []domain.Slot{
		{ID: "6-0", Time: "06:00", TaskID: 1},
		{ID: "6-30", Time: "06:30", TaskID: 2},
	}))

	require.NoError(t, store.SlotsReplaceAll(ctx, date, []domain.Slot{
		{ID: "6-0", Time: "06:00"},
		{ID: "6-30", Time: "06:30", TaskID: 2},
	}))

	slots, err := store.SlotsGetByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	byID := make(map[string]domain.Slot)
	for _, slot := range slots {
		byID[slot.ID] = slot
	}
	assert.True(t, byID["6-0"].Empty())
	assert.Equal(t, int64(2), byID["6-30"].TaskID)
}

func TestSlotsGetByDateEmpty(t *testing.T) {
	store := openTestStore(t)

	slots, err := store.SlotsGetByDate(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSessionStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	taskID, err := store.TasksCreate(ctx, newTask("task"))
	require.NoError(t, err)

	now := time.Now()
	date := domain.DateKey(now)
	for _, sess := range []domain.Session{
		{TaskID: taskID, StartTime: now, DurationSeconds: 600, Completed: true, Date: date},
		{TaskID: taskID, StartTime: now, DurationSeconds: 300, Completed: false, Date: date},
	} {
		_, err := store.SessionsCreate(ctx, sess)
		require.NoError(t, err)
	}

	stats, err := store.SessionStats(ctx, date, date)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.CompletedSessions)
	assert.Equal(t, 900, stats.TotalSeconds)
	assert.InDelta(t, 450, stats.AverageSeconds(), 0.01)
	assert.InDelta(t, 50, stats.CompletionRate(), 0.01)
}

func TestDailyStatsFillsEmptyDays(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	taskID, err := store.TasksCreate(ctx, newTask("task"))
	require.NoError(t, err)

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	_, err = store.SessionsCreate(ctx, domain.Session{
		TaskID:          taskID,
		StartTime:       yesterday,
		DurationSeconds: 1200,
		Completed:       true,
		Date:            domain.DateKey(yesterday),
	})
	require.NoError(t, err)

	stats, err := store.DailyStats(ctx, 3, now)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, domain.DateKey(now.AddDate(0, 0, -2)), stats[0].Date)
	assert.Zero(t, stats[0].Sessions)

	assert.Equal(t, domain.DateKey(yesterday), stats[1].Date)
	assert.Equal(t, 1, stats[1].Sessions)
	assert.Equal(t, 1200, stats[1].Seconds)
	assert.Equal(t, 1, stats[1].TasksCompleted)

	assert.Equal(t, domain.DateKey(now), stats[2].Date)
	assert.Zero(t, stats[2].Sessions)
}
