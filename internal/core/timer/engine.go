// Package timer implements the focus session engine: a countdown bound to
// one scheduled slot at a time.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/timeboxpro/timebox/internal/domain"
)

// State is the engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns the display string of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Grid resolves slots for session starts.
type Grid interface {
	SlotByID(id string) (domain.Slot, bool)
}

// Tasks is the slice of the task store the engine needs.
type Tasks interface {
	Get(ctx context.Context, id int64) (domain.Task, error)
	SetCompleted(ctx context.Context, id int64, completed bool) error
}

// SessionStorage persists session records.
type SessionStorage interface {
	SessionsCreate(ctx context.Context, sess domain.Session) (int64, error)
	SessionsGet(ctx context.Context, id int64) (domain.Session, error)
	SessionsUpdate(ctx context.Context, sess domain.Session) error
}

// Completion reports that a countdown ran to zero.
type Completion struct {
	TaskID    int64
	SessionID int64
}

// Engine drives at most one running session. All methods are called from
// the single UI update loop, so state transitions are serialized; a stop
// and a final tick can never interleave.
type Engine struct {
	grid     Grid
	tasks    Tasks
	sessions SessionStorage
	logger   *slog.Logger

	state        State
	slotID       string
	sessionID    int64
	taskID       int64
	totalSeconds int
	remaining    int
	startedAt    time.Time
	now          func() time.Time
}

// New creates an idle engine.
func New(grid Grid, tasks Tasks, sessions SessionStorage, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		grid:     grid,
		tasks:    tasks,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Running reports whether a session is in progress.
func (e *Engine) Running() bool { return e.state == StateRunning }

// TaskID returns the task of the running session, or 0 when idle.
func (e *Engine) TaskID() int64 { return e.taskID }

// SlotID returns the slot of the running session, or "" when idle.
func (e *Engine) SlotID() string { return e.slotID }

// Remaining returns the seconds left on the countdown.
func (e *Engine) Remaining() int { return e.remaining }

// Progress returns completion of the countdown in [0, 1].
func (e *Engine) Progress() float64 {
	if e.totalSeconds == 0 {
		return 0
	}
	return float64(e.totalSeconds-e.remaining) / float64(e.totalSeconds)
}

// RemainingLabel formats the countdown as MM:SS, or H:MM:SS past an hour.
func (e *Engine) RemainingLabel() string {
	r := e.remaining
	if r < 0 {
		r = 0
	}
	if r >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", r/3600, (r%3600)/60, r%60)
	}
	return fmt.Sprintf("%02d:%02d", r/60, r%60)
}

// Start begins a session for the task occupying the given slot. The session
// record is persisted before the countdown starts; a storage failure leaves
// the engine idle.
func (e *Engine) Start(ctx context.Context, slotID string) error {
	if e.state == StateRunning {
		return &domain.InvalidStateError{Op: "start timer", Reason: "a session is already running"}
	}

	slot, ok := e.grid.SlotByID(slotID)
	if !ok {
		return &domain.InvalidStateError{Op: "start timer", Reason: fmt.Sprintf("unknown slot %q", slotID)}
	}
	if slot.Empty() {
		return &domain.InvalidStateError{Op: "start timer", Reason: "slot has no task"}
	}

	task, err := e.tasks.Get(ctx, slot.TaskID)
	if err != nil {
		return err
	}
	if task.Completed {
		return &domain.InvalidStateError{Op: "start timer", Reason: "task is already completed"}
	}

	start := e.now()
	sessionID, err := e.sessions.SessionsCreate(ctx, domain.Session{
		TaskID:    task.ID,
		StartTime: start,
		Date:      domain.DateKey(start),
	})
	if err != nil {
		return err
	}

	e.state = StateRunning
	e.slotID = slotID
	e.sessionID = sessionID
	e.taskID = task.ID
	e.totalSeconds = task.DurationMinutes * 60
	e.remaining = e.totalSeconds
	e.startedAt = start

	e.logger.Info("session started", "task", task.ID, "slot", slotID, "seconds", e.totalSeconds)
	return nil
}

// Tick advances the countdown by one second. When it reaches zero the
// session is closed as completed and the task is marked done; the returned
// Completion is non-nil even if persisting the outcome failed, so the UI
// can still report expiry.
func (e *Engine) Tick(ctx context.Context) (*Completion, error) {
	if e.state != StateRunning {
		return nil, nil
	}

	e.remaining--
	if e.remaining > 0 {
		return nil, nil
	}
	e.remaining = 0

	done := &Completion{TaskID: e.taskID, SessionID: e.sessionID}
	e.reset()

	if err := e.closeSession(ctx, done.SessionID, domain.NoteTimerCompleted); err != nil {
		return done, err
	}
	if err := e.tasks.SetCompleted(ctx, done.TaskID, true); err != nil {
		return done, err
	}

	e.logger.Info("session completed", "task", done.TaskID, "session", done.SessionID)
	return done, nil
}

// Stop ends the running session early. The session records the elapsed wall
// time; the task is never marked completed by a manual stop.
func (e *Engine) Stop(ctx context.Context) error {
	if e.state != StateRunning {
		return &domain.InvalidStateError{Op: "stop timer", Reason: "no session is running"}
	}

	sessionID := e.sessionID
	taskID := e.taskID
	e.reset()

	if err := e.closeSession(ctx, sessionID, domain.NoteManuallyStopped); err != nil {
		return err
	}

	e.logger.Info("session stopped", "task", taskID, "session", sessionID)
	return nil
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.slotID = ""
	e.sessionID = 0
	e.taskID = 0
	e.totalSeconds = 0
	e.remaining = 0
	e.startedAt = time.Time{}
}

func (e *Engine) closeSession(ctx context.Context, sessionID int64, notes string) error {
	sess, err := e.sessions.SessionsGet(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.End(e.now(), notes)
	return e.sessions.SessionsUpdate(ctx, sess)
}
