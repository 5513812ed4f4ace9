package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/timeboxpro/timebox/internal/domain"
)

// SnapshotStorage is the slice of the persistence boundary the schedule
// needs: full-day snapshots keyed by date.
type SnapshotStorage interface {
	SlotsReplaceAll(ctx context.Context, date string, slots []domain.Slot) error
	SlotsGetByDate(ctx context.Context, date string) ([]domain.Slot, error)
}

// Service couples the in-memory grid to its persisted snapshot. Mutations
// apply in memory first and roll back if the snapshot write fails.
type Service struct {
	grid    *Grid
	storage SnapshotStorage
	now     func() time.Time
	logger  *slog.Logger
}

// NewService creates a schedule service around an empty grid.
func NewService(storage SnapshotStorage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		grid:    NewGrid(),
		storage: storage,
		now:     time.Now,
		logger:  logger,
	}
}

// Grid exposes the underlying grid for read access.
func (s *Service) Grid() *Grid {
	return s.grid
}

// Load rebuilds today's grid from the stored snapshot. Slots never saved
// stay empty; references to vanished tasks are dropped.
func (s *Service) Load(ctx context.Context, exists func(int64) bool) error {
	date := domain.DateKey(s.now())
	stored, err := s.storage.SlotsGetByDate(ctx, date)
	if err != nil {
		return err
	}

	assignments := make(map[string]int64, len(stored))
	for _, slot := range stored {
		if !slot.Empty() {
			assignments[slot.ID] = slot.TaskID
		}
	}
	s.grid.Restore(assignments, exists)
	s.logger.Info("schedule loaded", "date", date, "assigned", len(assignments))
	return nil
}

// Move places the task into the slot (or unschedules it via
// UnscheduledSlotID) and persists the full snapshot. On a storage failure
// the in-memory change is rolled back.
func (s *Service) Move(ctx context.Context, slotID string, taskID int64) error {
	before := s.grid.Slots()
	if err := s.grid.Assign(slotID, taskID); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		s.grid.restore(before)
		return err
	}
	return nil
}

// Unassign removes the task from the grid and persists the snapshot,
// rolling back on failure. Removing an unplaced task is a no-op.
func (s *Service) Unassign(ctx context.Context, taskID int64) error {
	before := s.grid.Slots()
	if !s.grid.Unassign(taskID) {
		return nil
	}
	if err := s.persist(ctx); err != nil {
		s.grid.restore(before)
		return err
	}
	return nil
}

func (s *Service) persist(ctx context.Context) error {
	date := domain.DateKey(s.now())
	return s.storage.SlotsReplaceAll(ctx, date, s.grid.Slots())
}
