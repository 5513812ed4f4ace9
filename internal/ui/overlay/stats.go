package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeboxpro/timebox/internal/domain"
)

// StatsOverlay shows aggregate session stats and a per-day breakdown.
type StatsOverlay struct {
	totals domain.SessionStats
	daily  []domain.DailyStat
	styles *Styles
}

// NewStatsOverlay creates a stats view over the trailing week.
func NewStatsOverlay(totals domain.SessionStats, daily []domain.DailyStat) *StatsOverlay {
	return &StatsOverlay{
		totals: totals,
		daily:  daily,
		styles: New(),
	}
}

// Init initializes the overlay
func (s *StatsOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (s *StatsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return s, func() tea.Msg { return CloseOverlayMsg{} }
		}
	}
	return s, nil
}

// View renders the stats view
func (s *StatsOverlay) View() string {
	var b strings.Builder

	writeField := func(label, value string) {
		b.WriteString(s.styles.Label.Render(label))
		b.WriteString(" ")
		b.WriteString(s.styles.Value.Render(value))
		b.WriteString("\n")
	}

	writeField("Sessions:", fmt.Sprintf("%d", s.totals.TotalSessions))
	writeField("Completed:", fmt.Sprintf("%d", s.totals.CompletedSessions))
	writeField("Focus time:", formatSeconds(s.totals.TotalSeconds))
	writeField("Avg session:", formatSeconds(int(s.totals.AverageSeconds())))
	writeField("Completion:", fmt.Sprintf("%.0f%%", s.totals.CompletionRate()))

	b.WriteString("\n")
	b.WriteString(s.styles.Separator.Render(strings.Repeat("─", 46)))
	b.WriteString("\n")

	maxSeconds := 0
	for _, day := range s.daily {
		if day.Seconds > maxSeconds {
			maxSeconds = day.Seconds
		}
	}

	for _, day := range s.daily {
		bar := ""
		if maxSeconds > 0 {
			width := day.Seconds * 20 / maxSeconds
			bar = strings.Repeat("█", width)
		}
		line := fmt.Sprintf("%s  %-20s %s", day.Date, s.styles.Bar.Render(bar), formatSeconds(day.Seconds))
		b.WriteString(s.styles.MenuItem.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(s.styles.Footer.Render("Esc: Close"))
	return b.String()
}

// Title returns the overlay title
func (s *StatsOverlay) Title() string {
	return "Productivity"
}

// Size returns the overlay dimensions
func (s *StatsOverlay) Size() (width, height int) {
	return 56, 12 + len(s.daily)
}
