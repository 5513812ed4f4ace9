// Package tasks implements the task store: creation, completion, deletion
// and listing rules on top of the persistence boundary.
package tasks

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/timeboxpro/timebox/internal/domain"
)

// Storage is the slice of the persistence boundary the task store needs.
type Storage interface {
	TasksCreate(ctx context.Context, t domain.Task) (int64, error)
	TasksList(ctx context.Context) ([]domain.Task, error)
	TasksGet(ctx context.Context, id int64) (domain.Task, error)
	TasksSetCompleted(ctx context.Context, id int64, completed bool, completedAt *time.Time) error
	TasksDelete(ctx context.Context, id int64) error
}

// Store applies task rules before handing records to storage.
type Store struct {
	storage   Storage
	pickColor func() string
	now       func() time.Time
	logger    *slog.Logger
}

// New creates a task store backed by the given storage.
func New(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage:   storage,
		pickColor: randomColor,
		now:       time.Now,
		logger:    logger,
	}
}

func randomColor() string {
	return domain.Palette[rand.Intn(len(domain.Palette))]
}

// Create validates and persists a new task. The returned task carries the
// id assigned by storage; nothing is considered created until storage
// succeeds.
func (s *Store) Create(ctx context.Context, title, description string, durationMinutes int, priority domain.Priority, category domain.Category) (domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Task{}, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if durationMinutes <= 0 {
		return domain.Task{}, &domain.ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if !priority.Valid() {
		priority = domain.PriorityMedium
	}
	if !category.Valid() {
		category = domain.CategoryGeneral
	}

	task := domain.Task{
		Title:           title,
		Description:     strings.TrimSpace(description),
		DurationMinutes: durationMinutes,
		Priority:        priority,
		Category:        category,
		Color:           s.pickColor(),
		CreatedAt:       s.now(),
	}

	id, err := s.storage.TasksCreate(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}
	task.ID = id

	s.logger.Info("task created", "id", id, "title", title)
	return task, nil
}

// List returns all tasks, most recently created first.
func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	return s.storage.TasksList(ctx)
}

// Get fetches a single task.
func (s *Store) Get(ctx context.Context, id int64) (domain.Task, error) {
	return s.storage.TasksGet(ctx, id)
}

// SetCompleted marks a task completed or clears the flag. Completing stamps
// the completion time; un-completing clears it.
func (s *Store) SetCompleted(ctx context.Context, id int64, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := s.now()
		completedAt = &now
	}
	if err := s.storage.TasksSetCompleted(ctx, id, completed, completedAt); err != nil {
		return err
	}
	s.logger.Info("task completion changed", "id", id, "completed", completed)
	return nil
}

// Delete removes a task and everything referencing it. Deleting a task that
// does not exist is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.storage.TasksDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("task deleted", "id", id)
	return nil
}

// Unscheduled filters tasks down to those not placed in any slot.
func Unscheduled(all []domain.Task, scheduled map[int64]struct{}) []domain.Task {
	var out []domain.Task
	for _, t := range all {
		if _, ok := scheduled[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}
