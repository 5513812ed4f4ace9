package domain

import "time"

// Session end notes. The note records how a session ended and is part of the
// durable record other tooling reads.
const (
	NoteTimerCompleted  = "Timer completed"
	NoteManuallyStopped = "Manually stopped"
)

// Session is a timing record of one work interval against a task
type Session struct {
	ID              int64
	TaskID          int64
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds int
	Completed       bool
	Notes           string
	Date            string // local calendar day the session started on, YYYY-MM-DD
}

// Open reports whether the session has not been ended yet
func (s Session) Open() bool {
	return s.EndTime == nil
}

// End closes the session at the given instant. Duration is computed from
// elapsed wall time, not from any remaining countdown.
func (s *Session) End(now time.Time, notes string) {
	end := now
	s.EndTime = &end
	s.DurationSeconds = int(end.Sub(s.StartTime) / time.Second)
	s.Completed = true
	s.Notes = notes
}

// DateKey formats a timestamp as the sortable calendar-day key used to
// address sessions and slot snapshots.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
