// Package app wires the TimeBox TUI together using The Elm Architecture:
// a single Model updated by messages, rendered by View.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxpro/timebox/internal/config"
	"github.com/timeboxpro/timebox/internal/core/schedule"
	"github.com/timeboxpro/timebox/internal/core/tasks"
	"github.com/timeboxpro/timebox/internal/core/timer"
	"github.com/timeboxpro/timebox/internal/domain"
	"github.com/timeboxpro/timebox/internal/services/navigation"
	"github.com/timeboxpro/timebox/internal/types"
	"github.com/timeboxpro/timebox/internal/ui/overlay"
	"github.com/timeboxpro/timebox/internal/ui/styles"
	"github.com/timeboxpro/timebox/internal/ui/tasklist"
	"github.com/timeboxpro/timebox/internal/ui/timeline"
	"github.com/timeboxpro/timebox/internal/ui/timerpanel"
)

// Re-export shared types for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeGoto   = types.ModeGoto
)

type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Storage is the full persistence surface the app needs. *sqlite.Store
// satisfies it.
type Storage interface {
	tasks.Storage
	schedule.SnapshotStorage
	timer.SessionStorage
	SessionsListByTask(ctx context.Context, taskID int64) ([]domain.Session, error)
	SessionStats(ctx context.Context, from, to string) (domain.SessionStats, error)
	DailyStats(ctx context.Context, days int, now time.Time) ([]domain.DailyStat, error)
}

// Model is the root application state
type Model struct {
	// Data
	tasks   []domain.Task
	loading bool

	// Services
	taskStore *tasks.Store
	schedule  *schedule.Service
	engine    *timer.Engine
	nav       *navigation.Service
	storage   Storage

	// UI state
	mode         Mode
	overlayStack *overlay.Stack
	toasts       []Toast
	showAll      bool
	width        int
	height       int

	// Renderers
	taskList   *tasklist.TaskList
	timeLine   *timeline.Timeline
	timerPanel *timerpanel.TimerPanel

	spinner spinner.Model

	styles *styles.Styles
	config *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates the application model with the given config and storage
func New(cfg *config.Config, storage Storage, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	st := styles.New()
	taskStore := tasks.New(storage, logger)
	scheduleSvc := schedule.NewService(storage, logger)
	engine := timer.New(scheduleSvc.Grid(), taskStore, storage, logger)

	return Model{
		tasks:        []domain.Task{},
		loading:      true,
		taskStore:    taskStore,
		schedule:     scheduleSvc,
		engine:       engine,
		nav:          navigation.NewService(),
		storage:      storage,
		mode:         ModeNormal,
		overlayStack: overlay.NewStack(),
		toasts:       []Toast{},
		spinner:      s,
		taskList:     tasklist.New(st),
		timeLine:     timeline.New(st),
		timerPanel:   timerpanel.New(st),
		styles:       st,
		config:       cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCmd(),
		tickEvery(time.Second),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// If an overlay is open, route keys to it
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.TaskCreatedMsg:
		return m.handleTaskCreated(msg)

	case overlay.SlotSelectedMsg:
		return m.handleSlotSelected(msg)

	case dataLoadedMsg:
		if msg.err != nil {
			m.addToast(ToastError, msg.err.Error())
			m.loading = false
			return m, nil
		}
		m.tasks = msg.tasks
		m.loading = false
		return m, nil

	case tickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeGoto:
		return m.handleGotoMode(msg)
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "q":
		return m.quit()

	case "tab":
		m.nav.SwitchPane()
		return m, nil

	case "j", "down":
		m.nav.MoveDown(m.visibleTasks(), m.slots())
		return m, nil

	case "k", "up":
		m.nav.MoveUp(m.visibleTasks(), m.slots())
		return m, nil

	case "g":
		m.mode = ModeGoto
		return m, nil

	case "n":
		return m, m.overlayStack.Push(overlay.NewCreateTaskOverlay())

	case "a":
		m.showAll = !m.showAll
		return m, nil

	case "c":
		return m.toggleComplete(ctx)

	case "d":
		task := m.nav.CurrentTask(m.visibleTasks())
		if task == nil {
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewConfirmDialog(
			"Delete Task",
			"Delete \""+task.Title+"\" and its session history?",
			"delete-task",
			task.ID,
		))

	case "enter":
		return m.openDetail(ctx)

	case "C":
		return m, m.overlayStack.Push(overlay.NewConfirmDialog(
			"Complete All",
			"Mark every task as completed?",
			"complete-all",
			nil,
		))

	case "R":
		return m, m.overlayStack.Push(overlay.NewConfirmDialog(
			"Reset All",
			"Mark every task as not completed?",
			"reset-all",
			nil,
		))

	case "m":
		return m.openMove()

	case "u":
		return m.unscheduleCurrent(ctx)

	case "s":
		return m.startTimer(ctx)

	case "x":
		return m.stopTimer(ctx)

	case "p":
		return m.openStats(ctx)

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())
	}

	return m, nil
}

func (m Model) handleGotoMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal

	switch msg.String() {
	case "g":
		m.nav.GotoTop(m.visibleTasks(), m.slots())
	case "e":
		m.nav.GotoBottom(m.visibleTasks(), m.slots())
	case "t":
		m.nav.FocusTasks()
	case "s":
		m.nav.FocusSchedule()
	case "esc":
		// Cancelled
	}
	return m, nil
}

// handleOverlayKey routes keyboard input to the active overlay
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.overlayStack.Update(msg)
	return m, cmd
}

// handleSelection routes confirm dialog results by key. The dialog is
// done either way, so it comes off the stack first.
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	m.overlayStack.Pop()

	switch msg.Key {
	case "delete-task":
		result, ok := msg.Value.(overlay.ConfirmResult)
		if !ok || !result.Confirmed {
			return m, nil
		}
		id, ok := result.Value.(int64)
		if !ok {
			return m, nil
		}
		return m.deleteTask(ctx, id)

	case "complete-all":
		result, ok := msg.Value.(overlay.ConfirmResult)
		if !ok || !result.Confirmed {
			return m, nil
		}
		return m.setAllCompleted(ctx, true)

	case "reset-all":
		result, ok := msg.Value.(overlay.ConfirmResult)
		if !ok || !result.Confirmed {
			return m, nil
		}
		return m.setAllCompleted(ctx, false)
	}

	return m, nil
}

func (m Model) handleTaskCreated(msg overlay.TaskCreatedMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	task, err := m.taskStore.Create(ctx, msg.Title, msg.Description, msg.DurationMinutes, msg.Priority, msg.Category)
	if err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	if err := m.reloadTasks(ctx); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	m.nav.SelectTask(task.ID)
	m.addToast(ToastSuccess, "Task created")
	return m, nil
}

func (m Model) handleSlotSelected(msg overlay.SlotSelectedMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if msg.SlotID == "" {
		if err := m.schedule.Unassign(ctx, msg.TaskID); err != nil {
			m.addToast(ToastError, err.Error())
			return m, nil
		}
		m.addToast(ToastInfo, "Task unscheduled")
		return m, nil
	}

	if err := m.schedule.Move(ctx, msg.SlotID, msg.TaskID); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	m.nav.SelectSlot(msg.SlotID)
	m.addToast(ToastSuccess, "Task scheduled")
	return m, nil
}

// handleTick expires toasts and advances the countdown once per second
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	m.expireToasts()

	var cmds []tea.Cmd
	cmds = append(cmds, tickEvery(time.Second))

	if m.engine.Running() {
		completion, err := m.engine.Tick(ctx)
		if err != nil {
			m.logger.Error("tick persistence failed", "error", err)
			m.addToast(ToastError, err.Error())
		}
		if completion != nil {
			if err := m.reloadTasks(ctx); err != nil {
				m.addToast(ToastError, err.Error())
			}
			if m.config.Notifications.TimerCompleted {
				m.addToast(ToastSuccess, "Timer completed")
			}
			if m.config.Notifications.Sound {
				cmds = append(cmds, ringBell())
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) toggleComplete(ctx context.Context) (tea.Model, tea.Cmd) {
	task := m.nav.CurrentTask(m.visibleTasks())
	if task == nil {
		return m, nil
	}
	completed := !task.Completed
	if err := m.taskStore.SetCompleted(ctx, task.ID, completed); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	if err := m.reloadTasks(ctx); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	if completed && m.config.Notifications.CompletedTask {
		m.addToast(ToastSuccess, "Task completed")
	}
	return m, nil
}

func (m Model) deleteTask(ctx context.Context, id int64) (tea.Model, tea.Cmd) {
	// Stop the countdown first if it is running against this task
	if m.engine.Running() && m.engine.TaskID() == id {
		if err := m.engine.Stop(ctx); err != nil {
			m.addToast(ToastError, err.Error())
			return m, nil
		}
	}
	if err := m.taskStore.Delete(ctx, id); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	if err := m.schedule.Unassign(ctx, id); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	if err := m.reloadTasks(ctx); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	m.addToast(ToastInfo, "Task deleted")
	return m, nil
}

func (m Model) setAllCompleted(ctx context.Context, completed bool) (tea.Model, tea.Cmd) {
	for _, t := range m.tasks {
		if t.Completed == completed {
			continue
		}
		if err := m.taskStore.SetCompleted(ctx, t.ID, completed); err != nil {
			m.addToast(ToastError, err.Error())
			return m, nil
		}
	}
	if err := m.reloadTasks(ctx); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	if completed {
		m.addToast(ToastSuccess, "All tasks completed")
	} else {
		m.addToast(ToastInfo, "All tasks reset")
	}
	return m, nil
}

func (m Model) openDetail(ctx context.Context) (tea.Model, tea.Cmd) {
	task := m.currentAnyTask()
	if task == nil {
		return m, nil
	}
	sessions, err := m.storage.SessionsListByTask(ctx, task.ID)
	if err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	slotTime := ""
	if slotID, ok := m.schedule.Grid().FindTask(task.ID); ok {
		if slot, ok := m.schedule.Grid().SlotByID(slotID); ok {
			slotTime = slot.Time
		}
	}
	return m, m.overlayStack.Push(overlay.NewDetailOverlay(*task, sessions, slotTime))
}

func (m Model) openMove() (tea.Model, tea.Cmd) {
	task := m.currentAnyTask()
	if task == nil {
		return m, nil
	}
	_, scheduled := m.schedule.Grid().FindTask(task.ID)
	free := m.schedule.Grid().Available(task.ID)
	return m, m.overlayStack.Push(overlay.NewMoveTaskOverlay(*task, free, scheduled))
}

func (m Model) unscheduleCurrent(ctx context.Context) (tea.Model, tea.Cmd) {
	task := m.currentAnyTask()
	if task == nil {
		return m, nil
	}
	if _, ok := m.schedule.Grid().FindTask(task.ID); !ok {
		return m, nil
	}
	if err := m.schedule.Unassign(ctx, task.ID); err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	m.addToast(ToastInfo, "Task unscheduled")
	return m, nil
}

func (m Model) startTimer(ctx context.Context) (tea.Model, tea.Cmd) {
	slot := m.nav.CurrentSlot(m.slots())
	if slot == nil || m.nav.Pane() != navigation.PaneSchedule {
		m.addToast(ToastWarning, "Select a slot in the schedule first")
		return m, nil
	}
	if err := m.engine.Start(ctx, slot.ID); err != nil {
		if domain.IsInvalidState(err) || domain.IsValidation(err) {
			m.addToast(ToastWarning, err.Error())
		} else {
			m.addToast(ToastError, err.Error())
		}
		return m, nil
	}
	m.addToast(ToastInfo, "Session started")
	return m, nil
}

func (m Model) stopTimer(ctx context.Context) (tea.Model, tea.Cmd) {
	if err := m.engine.Stop(ctx); err != nil {
		if domain.IsInvalidState(err) {
			m.addToast(ToastWarning, err.Error())
		} else {
			m.addToast(ToastError, err.Error())
		}
		return m, nil
	}
	m.addToast(ToastInfo, "Session stopped")
	return m, nil
}

func (m Model) openStats(ctx context.Context) (tea.Model, tea.Cmd) {
	now := m.now()
	from := domain.DateKey(now.AddDate(0, 0, -6))
	to := domain.DateKey(now)
	totals, err := m.storage.SessionStats(ctx, from, to)
	if err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	daily, err := m.storage.DailyStats(ctx, 7, now)
	if err != nil {
		m.addToast(ToastError, err.Error())
		return m, nil
	}
	return m, m.overlayStack.Push(overlay.NewStatsOverlay(totals, daily))
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.engine.Running() {
		if err := m.engine.Stop(context.Background()); err != nil {
			m.logger.Error("failed to stop session on quit", "error", err)
		}
	}
	return m, tea.Quit
}

// visibleTasks builds the task pane contents. By default only tasks not
// placed on the grid are listed; "a" toggles the full list. The
// showCompleted setting applies on top of either view.
func (m Model) visibleTasks() []domain.Task {
	visible := m.tasks
	if !m.showAll {
		visible = tasks.Unscheduled(visible, m.schedule.Grid().ScheduledIDs())
	}
	if m.config.UI.ShowCompleted {
		return visible
	}
	filtered := make([]domain.Task, 0, len(visible))
	for _, t := range visible {
		if !t.Completed {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func (m Model) slots() []domain.Slot {
	return m.schedule.Grid().Slots()
}

func (m Model) tasksByID() map[int64]domain.Task {
	byID := make(map[int64]domain.Task, len(m.tasks))
	for _, t := range m.tasks {
		byID[t.ID] = t
	}
	return byID
}

// currentAnyTask resolves the task under the cursor in either pane:
// the highlighted task, or the occupant of the highlighted slot.
func (m Model) currentAnyTask() *domain.Task {
	if m.nav.Pane() == navigation.PaneTasks {
		return m.nav.CurrentTask(m.visibleTasks())
	}
	slot := m.nav.CurrentSlot(m.slots())
	if slot == nil || slot.Empty() {
		return nil
	}
	byID := m.tasksByID()
	if t, ok := byID[slot.TaskID]; ok {
		return &t
	}
	return nil
}

func (m *Model) reloadTasks(ctx context.Context) error {
	ts, err := m.taskStore.List(ctx)
	if err != nil {
		return err
	}
	m.tasks = ts
	return nil
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level ToastLevel, message string) {
	seconds := m.config.UI.ToastSeconds
	if seconds <= 0 {
		seconds = 3
	}
	ttl := time.Duration(seconds) * time.Second
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now(), ttl))
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	now := m.now()
	filtered := make([]Toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if !t.Expired(now) {
			filtered = append(filtered, t)
		}
	}
	m.toasts = filtered
}

type tickMsg time.Time

type dataLoadedMsg struct {
	tasks []domain.Task
	err   error
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ringBell emits the terminal bell
func ringBell() tea.Cmd {
	return tea.Printf("\a")
}

// loadCmd loads tasks and today's schedule from storage
func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		ts, err := m.taskStore.List(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		byID := make(map[int64]struct{}, len(ts))
		for _, t := range ts {
			byID[t.ID] = struct{}{}
		}
		exists := func(id int64) bool {
			_, ok := byID[id]
			return ok
		}
		if err := m.schedule.Load(ctx, exists); err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{tasks: ts}
	}
}
