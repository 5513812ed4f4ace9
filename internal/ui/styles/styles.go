// Package styles defines the shared lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxpro/timebox/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Panes
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	PaneTitle    lipgloss.Style
	PaneSubtitle lipgloss.Style

	// Task rows
	TaskRow       lipgloss.Style
	TaskRowActive lipgloss.Style
	TaskTitle     lipgloss.Style
	TaskDone      lipgloss.Style
	TaskMeta      lipgloss.Style

	// Schedule rows
	SlotTime   lipgloss.Style
	SlotEmpty  lipgloss.Style
	SlotFilled lipgloss.Style
	SlotActive lipgloss.Style

	// Badges
	PriorityBadge func(priority domain.Priority) lipgloss.Style
	CategoryBadge func(category domain.Category) lipgloss.Style

	// Timer panel
	TimerClock lipgloss.Style
	TimerLabel lipgloss.Style
	TimerIdle  lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	Separator      lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		PaneTitle: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			MarginBottom(1),

		PaneSubtitle: lipgloss.NewStyle().
			Foreground(Overlay1),

		TaskRow: lipgloss.NewStyle().
			Foreground(Text),

		TaskRowActive: lipgloss.NewStyle().
			Foreground(Base).
			Background(Lavender).
			Bold(true),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text),

		TaskDone: lipgloss.NewStyle().
			Foreground(Overlay0).
			Strikethrough(true),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Subtext0),

		SlotTime: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),

		SlotEmpty: lipgloss.NewStyle().
			Foreground(Surface2),

		SlotFilled: lipgloss.NewStyle().
			Foreground(Text),

		SlotActive: lipgloss.NewStyle().
			Foreground(Base).
			Background(Lavender).
			Bold(true),

		PriorityBadge: func(priority domain.Priority) lipgloss.Style {
			color, ok := PriorityColors[priority.String()]
			if !ok {
				color = Overlay0
			}
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Padding(0, 1).
				Bold(true)
		},

		CategoryBadge: func(category domain.Category) lipgloss.Style {
			color, ok := CategoryColors[category.String()]
			if !ok {
				color = Overlay0
			}
			return lipgloss.NewStyle().
				Foreground(color).
				Background(Surface0).
				Padding(0, 1)
		},

		TimerClock: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),

		TimerLabel: lipgloss.NewStyle().
			Foreground(Subtext0),

		TimerIdle: lipgloss.NewStyle().
			Foreground(Overlay0),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}
