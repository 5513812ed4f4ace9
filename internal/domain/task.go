// Package domain contains core business types for the TimeBox application.
package domain

import (
	"fmt"
	"time"
)

// Priority represents task priority
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the supported priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Short returns single character representation
func (p Priority) Short() string {
	switch p {
	case PriorityLow:
		return "L"
	case PriorityMedium:
		return "M"
	case PriorityHigh:
		return "H"
	default:
		return "?"
	}
}

// String returns the display string
func (p Priority) String() string {
	return string(p)
}

// Category groups tasks by area of life
type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategorySocial   Category = "social"
)

// Categories lists all supported categories in display order
var Categories = []Category{
	CategoryGeneral,
	CategoryWork,
	CategoryPersonal,
	CategoryHealth,
	CategoryLearning,
	CategorySocial,
}

// Valid reports whether c is one of the supported categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the display string
func (c Category) String() string {
	return string(c)
}

// Palette is the fixed set of task colors. A new task gets a random pick;
// the color is purely cosmetic and carried through for UI identity.
var Palette = []string{
	"#3b82f6", // blue
	"#22c55e", // green
	"#a855f7", // purple
	"#ec4899", // pink
	"#eab308", // yellow
	"#ef4444", // red
	"#6366f1", // indigo
	"#14b8a6", // teal
	"#f97316", // orange
	"#06b6d4", // cyan
	"#10b981", // emerald
	"#f43f5e", // rose
}

// DurationChoices are the durations offered by the create-task form, in
// minutes. The engine itself accepts any positive duration.
var DurationChoices = []int{15, 30, 45, 60, 90, 120, 180}

// Task represents a unit of work that can be boxed into a time slot
type Task struct {
	ID              int64
	Title           string
	Description     string
	DurationMinutes int
	Priority        Priority
	Category        Category
	Color           string
	Completed       bool
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// DurationLabel formats the task duration for display, e.g. "45m" or "1h 30m"
func (t Task) DurationLabel() string {
	if t.DurationMinutes < 60 {
		return fmt.Sprintf("%dm", t.DurationMinutes)
	}
	hours := t.DurationMinutes / 60
	mins := t.DurationMinutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
