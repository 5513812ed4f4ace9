package domain

// SessionStats aggregates focus sessions over a date range.
type SessionStats struct {
	TotalSessions     int
	CompletedSessions int
	TotalSeconds      int
}

// AverageSeconds returns the mean session length, or 0 with no sessions.
func (s SessionStats) AverageSeconds() float64 {
	if s.TotalSessions == 0 {
		return 0
	}
	return float64(s.TotalSeconds) / float64(s.TotalSessions)
}

// CompletionRate returns the percentage of sessions that ran to completion.
func (s SessionStats) CompletionRate() float64 {
	if s.TotalSessions == 0 {
		return 0
	}
	return float64(s.CompletedSessions) / float64(s.TotalSessions) * 100
}

// DailyStat is the per-day breakdown used by the productivity view.
type DailyStat struct {
	Date           string
	Sessions       int
	Seconds        int
	TasksCompleted int
}
