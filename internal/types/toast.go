package types

import "time"

// ToastLevel classifies a notification for styling.
type ToastLevel int

const (
	ToastInfo    ToastLevel = iota // session started, task unscheduled
	ToastSuccess                   // task created, timer completed
	ToastWarning                   // rejected action, e.g. starting an empty slot
	ToastError                     // storage failures
)

// Toast is a transient notification shown at the bottom of the screen.
// Scheduling and session outcomes surface as toasts rather than modals
// so they never steal focus from the grid.
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// NewToast creates a toast that stays visible for ttl from now.
func NewToast(level ToastLevel, message string, now time.Time, ttl time.Duration) Toast {
	return Toast{
		Level:   level,
		Message: message,
		Expires: now.Add(ttl),
	}
}

// Expired reports whether the toast should no longer be shown.
func (t Toast) Expired(now time.Time) bool {
	return !t.Expires.After(now)
}
