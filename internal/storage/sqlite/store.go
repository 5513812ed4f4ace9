// Package sqlite implements the persistence boundary on top of a local
// SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/timeboxpro/timebox/internal/domain"
)

// Store wraps access to the SQLite database and exposes high level helpers.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open initializes a new SQLite store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            duration_minutes INTEGER NOT NULL,
            priority TEXT NOT NULL DEFAULT 'medium',
            category TEXT NOT NULL DEFAULT 'general',
            color TEXT NOT NULL DEFAULT '',
            completed INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            completed_at DATETIME
        );`,
		`CREATE TABLE IF NOT EXISTS sessions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            task_id INTEGER NOT NULL,
            start_time DATETIME NOT NULL,
            end_time DATETIME,
            duration_seconds INTEGER NOT NULL DEFAULT 0,
            completed INTEGER NOT NULL DEFAULT 0,
            notes TEXT NOT NULL DEFAULT '',
            date TEXT NOT NULL,
            FOREIGN KEY(task_id) REFERENCES tasks(id) ON DELETE CASCADE
        );`,
		`CREATE TABLE IF NOT EXISTS time_slots (
            date TEXT NOT NULL,
            slot_id TEXT NOT NULL,
            time TEXT NOT NULL,
            task_id INTEGER,
            PRIMARY KEY(date, slot_id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_task ON sessions(task_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// TasksCreate inserts a task and returns its assigned id.
func (s *Store) TasksCreate(ctx context.Context, t domain.Task) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks(title, description, duration_minutes, priority, category, color, completed, created_at)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.DurationMinutes, string(t.Priority), string(t.Category), t.Color, t.Completed, t.CreatedAt)
	if err != nil {
		return 0, &domain.StorageError{Op: "create task", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &domain.StorageError{Op: "create task", Err: err}
	}
	return id, nil
}

// TasksList returns all tasks, most recently created first.
func (s *Store) TasksList(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, duration_minutes, priority, category, color, completed, created_at, completed_at
        FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list tasks", Err: err}
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list tasks", Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list tasks", Err: err}
	}
	return tasks, nil
}

// TasksGet fetches a single task by id.
func (s *Store) TasksGet(ctx context.Context, id int64) (domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, duration_minutes, priority, category, color, completed, created_at, completed_at
        FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, &domain.StorageError{Op: "get task", Err: err}
	}
	return t, nil
}

// TasksSetCompleted flips a task's completion flag.
func (s *Store) TasksSetCompleted(ctx context.Context, id int64, completed bool, completedAt *time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = ?, completed_at = ? WHERE id = ?`,
		completed, nullableTime(completedAt), id)
	if err != nil {
		return &domain.StorageError{Op: "update task", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update task", Err: err}
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TasksDelete removes a task along with its sessions and clears any slot
// referencing it. Deleting an absent task is a no-op.
func (s *Store) TasksDelete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "delete task", Err: err}
	}
	defer tx.Rollback()

	if err := deleteSessionsByTask(ctx, tx, id); err != nil {
		return &domain.StorageError{Op: "delete task", Err: err}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE time_slots SET task_id = NULL WHERE task_id = ?`, id); err != nil {
		return &domain.StorageError{Op: "delete task", Err: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return &domain.StorageError{Op: "delete task", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "delete task", Err: err}
	}
	return nil
}

// SessionsCreate inserts a session row and returns its id.
func (s *Store) SessionsCreate(ctx context.Context, sess domain.Session) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO sessions(task_id, start_time, end_time, duration_seconds, completed, notes, date)
        VALUES(?, ?, ?, ?, ?, ?, ?)`,
		sess.TaskID, sess.StartTime, nullableTime(sess.EndTime), sess.DurationSeconds, sess.Completed, sess.Notes, sess.Date)
	if err != nil {
		return 0, &domain.StorageError{Op: "create session", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &domain.StorageError{Op: "create session", Err: err}
	}
	return id, nil
}

// SessionsGet fetches a session by id.
func (s *Store) SessionsGet(ctx context.Context, id int64) (domain.Session, error) {
	var (
		sess    domain.Session
		endTime sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, task_id, start_time, end_time, duration_seconds, completed, notes, date
        FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.TaskID, &sess.StartTime, &endTime, &sess.DurationSeconds, &sess.Completed, &sess.Notes, &sess.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, &domain.StorageError{Op: "get session", Err: err}
	}
	if endTime.Valid {
		t := endTime.Time
		sess.EndTime = &t
	}
	return sess, nil
}

// SessionsUpdate writes back a session's mutable fields.
func (s *Store) SessionsUpdate(ctx context.Context, sess domain.Session) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET end_time = ?, duration_seconds = ?, completed = ?, notes = ? WHERE id = ?`,
		nullableTime(sess.EndTime), sess.DurationSeconds, sess.Completed, sess.Notes, sess.ID)
	if err != nil {
		return &domain.StorageError{Op: "update session", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update session", Err: err}
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SessionsDeleteByTask removes every session recorded for a task. The
// task row itself is untouched.
func (s *Store) SessionsDeleteByTask(ctx context.Context, taskID int64) error {
	if err := deleteSessionsByTask(ctx, s.db, taskID); err != nil {
		return &domain.StorageError{Op: "delete sessions", Err: err}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// deleteSessionsByTask is shared between the standalone operation and the
// task-delete transaction.
func deleteSessionsByTask(ctx context.Context, db execer, taskID int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE task_id = ?`, taskID)
	return err
}

// SessionsListByTask returns the sessions recorded for a task, newest first.
func (s *Store) SessionsListByTask(ctx context.Context, taskID int64) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, task_id, start_time, end_time, duration_seconds, completed, notes, date
        FROM sessions WHERE task_id = ? ORDER BY start_time DESC`, taskID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list sessions", Err: err}
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var (
			sess    domain.Session
			endTime sql.NullTime
		)
		if err := rows.Scan(&sess.ID, &sess.TaskID, &sess.StartTime, &endTime, &sess.DurationSeconds, &sess.Completed, &sess.Notes, &sess.Date); err != nil {
			return nil, &domain.StorageError{Op: "list sessions", Err: err}
		}
		if endTime.Valid {
			t := endTime.Time
			sess.EndTime = &t
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list sessions", Err: err}
	}
	return sessions, nil
}

// SlotsReplaceAll replaces the stored schedule for a date with the given
// snapshot in a single transaction. An empty slot is stored with a NULL
// task id.
func (s *Store) SlotsReplaceAll(ctx context.Context, date string, slots []domain.Slot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "save slots", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM time_slots WHERE date = ?`, date); err != nil {
		return &domain.StorageError{Op: "save slots", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO time_slots(date, slot_id, time, task_id) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return &domain.StorageError{Op: "save slots", Err: err}
	}
	defer stmt.Close()

	for _, slot := range slots {
		var taskID sql.NullInt64
		if slot.TaskID != 0 {
			taskID = sql.NullInt64{Int64: slot.TaskID, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, date, slot.ID, slot.Time, taskID); err != nil {
			return &domain.StorageError{Op: "save slots", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "save slots", Err: err}
	}
	return nil
}

// SlotsGetByDate loads the stored schedule snapshot for a date. A missing
// date returns an empty slice, not an error.
func (s *Store) SlotsGetByDate(ctx context.Context, date string) ([]domain.Slot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot_id, time, task_id FROM time_slots WHERE date = ?`, date)
	if err != nil {
		return nil, &domain.StorageError{Op: "load slots", Err: err}
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var (
			slot   domain.Slot
			taskID sql.NullInt64
		)
		if err := rows.Scan(&slot.ID, &slot.Time, &taskID); err != nil {
			return nil, &domain.StorageError{Op: "load slots", Err: err}
		}
		if taskID.Valid {
			slot.TaskID = taskID.Int64
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "load slots", Err: err}
	}
	return slots, nil
}

// SessionStats aggregates sessions whose date falls inside [from, to],
// both bounds inclusive.
func (s *Store) SessionStats(ctx context.Context, from, to string) (domain.SessionStats, error) {
	var (
		stats     domain.SessionStats
		completed sql.NullInt64
		seconds   sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), SUM(completed), SUM(duration_seconds)
        FROM sessions WHERE date >= ? AND date <= ?`, from, to).
		Scan(&stats.TotalSessions, &completed, &seconds)
	if err != nil {
		return domain.SessionStats{}, &domain.StorageError{Op: "session stats", Err: err}
	}
	stats.CompletedSessions = int(completed.Int64)
	stats.TotalSeconds = int(seconds.Int64)
	return stats, nil
}

// DailyStats returns a per-day breakdown for the trailing `days` days ending
// at now, oldest first. Days with no sessions are present with zero counts.
func (s *Store) DailyStats(ctx context.Context, days int, now time.Time) ([]domain.DailyStat, error) {
	if days <= 0 {
		return nil, nil
	}

	from := domain.DateKey(now.AddDate(0, 0, -(days - 1)))
	to := domain.DateKey(now)

	rows, err := s.db.QueryContext(ctx, `SELECT date, COUNT(*), SUM(duration_seconds), SUM(completed)
        FROM sessions WHERE date >= ? AND date <= ? GROUP BY date`, from, to)
	if err != nil {
		return nil, &domain.StorageError{Op: "daily stats", Err: err}
	}
	defer rows.Close()

	byDate := make(map[string]domain.DailyStat)
	for rows.Next() {
		var (
			stat      domain.DailyStat
			seconds   sql.NullInt64
			completed sql.NullInt64
		)
		if err := rows.Scan(&stat.Date, &stat.Sessions, &seconds, &completed); err != nil {
			return nil, &domain.StorageError{Op: "daily stats", Err: err}
		}
		stat.Seconds = int(seconds.Int64)
		stat.TasksCompleted = int(completed.Int64)
		byDate[stat.Date] = stat
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "daily stats", Err: err}
	}

	out := make([]domain.DailyStat, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := domain.DateKey(now.AddDate(0, 0, -i))
		if stat, ok := byDate[date]; ok {
			out = append(out, stat)
		} else {
			out = append(out, domain.DailyStat{Date: date})
		}
	}
	return out, nil
}

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t           domain.Task
		priority    string
		category    string
		completedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DurationMinutes, &priority, &category, &t.Color, &t.Completed, &t.CreatedAt, &completedAt)
	if err != nil {
		return domain.Task{}, err
	}
	t.Priority = domain.Priority(priority)
	t.Category = domain.Category(category)
	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}
	return t, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
