package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		styles:     New(),
		viewHeight: 20,
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			return h, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			if h.scroll < h.maxScroll {
				h.scroll++
			}
			return h, nil

		case "k", "up":
			if h.scroll > 0 {
				h.scroll--
			}
			return h, nil

		case "g":
			h.scroll = 0
			return h, nil

		case "G":
			h.scroll = h.maxScroll
			return h, nil
		}
	}

	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	categories := h.getCategories()

	var content strings.Builder
	for i, cat := range categories {
		if i > 0 {
			content.WriteString("\n")
		}

		content.WriteString(h.styles.LabelFocused.Render(cat.Name + ":"))
		content.WriteString("\n")

		for _, binding := range cat.Bindings {
			line := "  " + h.styles.MenuKey.Render(binding.Key) + "  " + h.styles.MenuItem.Render(binding.Description)
			content.WriteString(line)
			content.WriteString("\n")
		}
	}

	lines := strings.Split(content.String(), "\n")
	totalLines := len(lines)
	h.maxScroll = max(0, totalLines-h.viewHeight)

	start := h.scroll
	end := min(h.scroll+h.viewHeight, totalLines)

	result := strings.Join(lines[start:end], "\n")

	if h.maxScroll > 0 {
		result += "\n\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}

	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	h.viewHeight = 20
	return 52, 24
}

// getCategories returns all keybinding categories
func (h *HelpOverlay) getCategories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Navigation",
			Bindings: []KeyBinding{
				{Key: "Tab", Description: "Switch between tasks and schedule"},
				{Key: "j/k", Description: "Move up/down"},
				{Key: "gg", Description: "Jump to top"},
				{Key: "ge", Description: "Jump to bottom"},
				{Key: "gt", Description: "Jump to tasks pane"},
				{Key: "gs", Description: "Jump to schedule pane"},
			},
		},
		{
			Name: "Tasks",
			Bindings: []KeyBinding{
				{Key: "n", Description: "Create task"},
				{Key: "a", Description: "Toggle unscheduled / all tasks"},
				{Key: "c", Description: "Toggle completed"},
				{Key: "d", Description: "Delete task"},
				{Key: "Enter", Description: "Show task details"},
				{Key: "C", Description: "Complete all tasks"},
				{Key: "R", Description: "Reset all tasks"},
			},
		},
		{
			Name: "Schedule",
			Bindings: []KeyBinding{
				{Key: "m", Description: "Move task to a slot"},
				{Key: "u", Description: "Unschedule task"},
			},
		},
		{
			Name: "Timer",
			Bindings: []KeyBinding{
				{Key: "s", Description: "Start session for selected slot"},
				{Key: "x", Description: "Stop running session"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: "p", Description: "Productivity stats"},
				{Key: "?", Description: "Help (this screen)"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}

// min returns the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// max returns the maximum of two integers
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
