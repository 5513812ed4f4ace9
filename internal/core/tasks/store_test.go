package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxpro/timebox/internal/domain"
)

type fakeStorage struct {
	tasks     map[int64]domain.Task
	nextID    int64
	createErr error
	deleted   []int64
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{tasks: make(map[int64]domain.Task), nextID: 1}
}

func (f *fakeStorage) TasksCreate(_ context.Context, t domain.Task) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	t.ID = id
	f.tasks[id] = t
	return id, nil
}

func (f *fakeStorage) TasksList(_ context.Context) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStorage) TasksGet(_ context.Context, id int64) (domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeStorage) TasksSetCompleted(_ context.Context, id int64, completed bool, completedAt *time.Time) error {
	t, ok := f.tasks[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Completed = completed
	t.CompletedAt = completedAt
	f.tasks[id] = t
	return nil
}

func (f *fakeStorage) TasksDelete(_ context.Context, id int64) error {
	delete(f.tasks, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestStore(storage Storage) *Store {
	s := New(storage, nil)
	s.pickColor = func() string { return "#3b82f6" }
	s.now = func() time.Time { return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestCreate(t *testing.T) {
	storage := newFakeStorage()
	store := newTestStore(storage)

	task, err := store.Create(context.Background(), "  Write report  ", " notes ", 45, domain.PriorityHigh, domain.CategoryWork)
	require.NoError(t, err)

	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "notes", task.Description)
	assert.Equal(t, 45, task.DurationMinutes)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.CategoryWork, task.Category)
	assert.Equal(t, "#3b82f6", task.Color)
	assert.False(t, task.Completed)
}

func TestCreateEmptyTitle(t *testing.T) {
	store := newTestStore(newFakeStorage())

	_, err := store.Create(context.Background(), "   ", "", 30, domain.PriorityMedium, domain.CategoryGeneral)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateInvalidDuration(t *testing.T) {
	store := newTestStore(newFakeStorage())

	_, err := store.Create(context.Background(), "task", "", 0, domain.PriorityMedium, domain.CategoryGeneral)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateNormalizesUnknownPriorityAndCategory(t *testing.T) {
	store := newTestStore(newFakeStorage())

	task, err := store.Create(context.Background(), "task", "", 30, domain.Priority("urgent"), domain.Category("misc"))
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.CategoryGeneral, task.Category)
}

func TestCreateStorageFailure(t *testing.T) {
	storage := newFakeStorage()
	storage.createErr = &domain.StorageError{Op: "create task", Err: errors.New("disk full")}
	store := newTestStore(storage)

	_, err := store.Create(context.Background(), "task", "", 30, domain.PriorityMedium, domain.CategoryGeneral)
	require.Error(t, err)

	var se *domain.StorageError
	assert.True(t, errors.As(err, &se))
	assert.Empty(t, storage.tasks)
}

func TestSetCompleted(t *testing.T) {
	storage := newFakeStorage()
	store := newTestStore(storage)

	task, err := store.Create(context.Background(), "task", "", 30, domain.PriorityMedium, domain.CategoryGeneral)
	require.NoError(t, err)

	require.NoError(t, store.SetCompleted(context.Background(), task.ID, true))
	got, err := store.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), *got.CompletedAt)

	require.NoError(t, store.SetCompleted(context.Background(), task.ID, false))
	got, err = store.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestDeleteIdempotent(t *testing.T) {
	storage := newFakeStorage()
	store := newTestStore(storage)

	require.NoError(t, store.Delete(context.Background(), 99))
	assert.Equal(t, []int64{99}, storage.deleted)
}

func TestUnscheduled(t *testing.T) {
	all := []domain.Task{{ID: 1}, {ID: 2}, {ID: 3}}
	scheduled := map[int64]struct{}{2: {}}

	got := Unscheduled(all, scheduled)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}
