package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxpro/timebox/internal/domain"
)

type fakeGrid struct {
	slots map[string]domain.Slot
}

func (f *fakeGrid) SlotByID(id string) (domain.Slot, bool) {
	slot, ok := f.slots[id]
	return slot, ok
}

type fakeTasks struct {
	tasks     map[int64]domain.Task
	completed []int64
	setErr    error
}

func (f *fakeTasks) Get(_ context.Context, id int64) (domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeTasks) SetCompleted(_ context.Context, id int64, completed bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	if completed {
		f.completed = append(f.completed, id)
	}
	return nil
}

type fakeSessions struct {
	sessions  map[int64]domain.Session
	nextID    int64
	createErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[int64]domain.Session), nextID: 1}
}

func (f *fakeSessions) SessionsCreate(_ context.Context, sess domain.Session) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	sess.ID = id
	f.sessions[id] = sess
	return id, nil
}

func (f *fakeSessions) SessionsGet(_ context.Context, id int64) (domain.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return sess, nil
}

func (f *fakeSessions) SessionsUpdate(_ context.Context, sess domain.Session) error {
	f.sessions[sess.ID] = sess
	return nil
}

type fixture struct {
	engine   *Engine
	grid     *fakeGrid
	tasks    *fakeTasks
	sessions *fakeSessions
	clock    time.Time
}

func newFixture() *fixture {
	f := &fixture{
		grid: &fakeGrid{slots: map[string]domain.Slot{
			"9-0":  {ID: "9-0", Time: "09:00", TaskID: 1},
			"10-0": {ID: "10-0", Time: "10:00"},
		}},
		tasks: &fakeTasks{tasks: map[int64]domain.Task{
			1: {ID: 1, Title: "focus", DurationMinutes: 1},
			2: {ID: 2, Title: "done", DurationMinutes: 30, Completed: true},
		}},
		sessions: newFakeSessions(),
		clock:    time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
	}
	f.engine = New(f.grid, f.tasks, f.sessions, nil)
	f.engine.now = func() time.Time { return f.clock }
	return f
}

func TestStart(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.engine.Start(context.Background(), "9-0"))

	assert.Equal(t, StateRunning, f.engine.State())
	assert.Equal(t, int64(1), f.engine.TaskID())
	assert.Equal(t, "9-0", f.engine.SlotID())
	assert.Equal(t, 60, f.engine.Remaining())
	assert.Equal(t, "01:00", f.engine.RemainingLabel())

	sess, err := f.sessions.SessionsGet(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sess.TaskID)
	assert.Equal(t, "2026-08-29", sess.Date)
	assert.True(t, sess.Open())
}

func TestStartWhileRunning(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.engine.Start(context.Background(), "9-0"))
	err := f.engine.Start(context.Background(), "9-0")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
}

func TestStartEmptySlot(t *testing.T) {
	f := newFixture()

	err := f.engine.Start(context.Background(), "10-0")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
	assert.Equal(t, StateIdle, f.engine.State())
}

func TestStartUnknownSlot(t *testing.T) {
	f := newFixture()

	err := f.engine.Start(context.Background(), "77-0")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
}

func TestStartCompletedTask(t *testing.T) {
	f := newFixture()
	f.grid.slots["11-0"] = domain.Slot{ID: "11-0", Time: "11:00", TaskID: 2}

	err := f.engine.Start(context.Background(), "11-0")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
}

func TestStartStorageFailureStaysIdle(t *testing.T) {
	f := newFixture()
	f.sessions.createErr = &domain.StorageError{Op: "create session", Err: errors.New("disk full")}

	err := f.engine.Start(context.Background(), "9-0")
	require.Error(t, err)
	assert.Equal(t, StateIdle, f.engine.State())
}

func TestTickCountsDown(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.engine.Start(context.Background(), "9-0"))

	done, err := f.engine.Tick(context.Background())
	require.NoError(t, err)
	assert.Nil(t, done)
	assert.Equal(t, 59, f.engine.Remaining())
	assert.InDelta(t, 1.0/60.0, f.engine.Progress(), 0.001)
}

func TestTickWhileIdle(t *testing.T) {
	f := newFixture()

	done, err := f.engine.Tick(context.Background())
	require.NoError(t, err)
	assert.Nil(t, done)
}

func TestTickExpiryCompletesTask(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.engine.Start(context.Background(), "9-0"))

	f.clock = f.clock.Add(time.Minute)

	var done *Completion
	for i := 0; i < 60; i++ {
		var err error
		done, err = f.engine.Tick(context.Background())
		require.NoError(t, err)
	}

	require.NotNil(t, done)
	assert.Equal(t, int64(1), done.TaskID)
	assert.Equal(t, int64(1), done.SessionID)
	assert.Equal(t, StateIdle, f.engine.State())

	sess, err := f.sessions.SessionsGet(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, sess.EndTime)
	assert.True(t, sess.Completed)
	assert.Equal(t, domain.NoteTimerCompleted, sess.Notes)
	assert.Equal(t, 60, sess.DurationSeconds)

	assert.Equal(t, []int64{1}, f.tasks.completed)
}

func TestTickExpiryPersistFailureStillReportsCompletion(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.engine.Start(context.Background(), "9-0"))
	f.tasks.setErr = errors.New("disk full")

	var (
		done *Completion
		err  error
	)
	for i := 0; i < 60; i++ {
		done, err = f.engine.Tick(context.Background())
	}

	require.Error(t, err)
	require.NotNil(t, done)
	assert.Equal(t, StateIdle, f.engine.State())
}

func TestStopRecordsElapsedNotRemaining(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.engine.Start(context.Background(), "9-0"))

	for i := 0; i < 10; i++ {
		_, err := f.engine.Tick(context.Background())
		require.NoError(t, err)
	}
	f.clock = f.clock.Add(10 * time.Second)

	require.NoError(t, f.engine.Stop(context.Background()))
	assert.Equal(t, StateIdle, f.engine.State())

	sess, err := f.sessions.SessionsGet(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, sess.EndTime)
	assert.Equal(t, domain.NoteManuallyStopped, sess.Notes)
	assert.Equal(t, 10, sess.DurationSeconds)

	// Manual stop never completes the task
	assert.Empty(t, f.tasks.completed)
}

func TestStopWhileIdle(t *testing.T) {
	f := newFixture()

	err := f.engine.Stop(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
}

func TestRemainingLabelHours(t *testing.T) {
	f := newFixture()
	f.tasks.tasks[1] = domain.Task{ID: 1, Title: "long", DurationMinutes: 90}

	require.NoError(t, f.engine.Start(context.Background(), "9-0"))
	assert.Equal(t, "1:30:00", f.engine.RemainingLabel())
}
