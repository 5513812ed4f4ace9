package domain

// Slot is one 30-minute cell of the daily schedule. TaskID is 0 when the
// slot is empty.
type Slot struct {
	ID     string // "hour-minute", e.g. "6-0", "13-30"
	Time   string // display form, e.g. "06:00"
	TaskID int64
}

// Empty reports whether no task is placed in the slot
func (s Slot) Empty() bool {
	return s.TaskID == 0
}
