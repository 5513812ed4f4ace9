package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeboxpro/timebox/internal/domain"
)

// TaskCreatedMsg is emitted when the create form is submitted
type TaskCreatedMsg struct {
	Title           string
	Description     string
	DurationMinutes int
	Priority        domain.Priority
	Category        domain.Category
}

// CreateTaskOverlay provides a form to create a new task
type CreateTaskOverlay struct {
	title       textinput.Model
	description textarea.Model
	durationIdx int
	priority    domain.Priority
	categoryIdx int
	focusIndex  int
	styles      *Styles
}

const (
	focusTitle = iota
	focusDescription
	focusDuration
	focusPriority
	focusCategory
	focusSubmit
	focusCount
)

// NewCreateTaskOverlay creates a new task creation overlay
func NewCreateTaskOverlay() *CreateTaskOverlay {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Task description (optional)..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(4)

	return &CreateTaskOverlay{
		title:       ti,
		description: ta,
		durationIdx: 1, // 30 minutes
		priority:    domain.PriorityMedium,
		focusIndex:  focusTitle,
		styles:      New(),
	}
}

// Init initializes the overlay
func (c *CreateTaskOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (c *CreateTaskOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return c, func() tea.Msg { return CloseOverlayMsg{} }

		case "ctrl+s":
			return c, c.submit()

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				c.focusIndex = (c.focusIndex + 1) % focusCount
			} else {
				c.focusIndex = (c.focusIndex - 1 + focusCount) % focusCount
			}

			if c.focusIndex == focusTitle {
				c.title.Focus()
				c.description.Blur()
			} else if c.focusIndex == focusDescription {
				c.title.Blur()
				c.description.Focus()
			} else {
				c.title.Blur()
				c.description.Blur()
			}

			return c, nil

		case "enter":
			if c.focusIndex == focusSubmit {
				return c, c.submit()
			}
		}

		// Selector fields cycle with h/l and arrows
		if c.focusIndex == focusDuration {
			switch msg.String() {
			case "left", "h":
				c.durationIdx = (c.durationIdx - 1 + len(domain.DurationChoices)) % len(domain.DurationChoices)
				return c, nil
			case "right", "l":
				c.durationIdx = (c.durationIdx + 1) % len(domain.DurationChoices)
				return c, nil
			}
		}

		if c.focusIndex == focusPriority {
			switch msg.String() {
			case "1":
				c.priority = domain.PriorityLow
				return c, nil
			case "2":
				c.priority = domain.PriorityMedium
				return c, nil
			case "3":
				c.priority = domain.PriorityHigh
				return c, nil
			case "left", "h":
				c.priority = c.nextPriority(-1)
				return c, nil
			case "right", "l":
				c.priority = c.nextPriority(1)
				return c, nil
			}
		}

		if c.focusIndex == focusCategory {
			switch msg.String() {
			case "left", "h":
				c.categoryIdx = (c.categoryIdx - 1 + len(domain.Categories)) % len(domain.Categories)
				return c, nil
			case "right", "l":
				c.categoryIdx = (c.categoryIdx + 1) % len(domain.Categories)
				return c, nil
			}
		}
	}

	var cmd tea.Cmd
	if c.focusIndex == focusTitle {
		c.title, cmd = c.title.Update(msg)
		cmds = append(cmds, cmd)
	} else if c.focusIndex == focusDescription {
		c.description, cmd = c.description.Update(msg)
		cmds = append(cmds, cmd)
	}

	return c, tea.Batch(cmds...)
}

func (c *CreateTaskOverlay) nextPriority(delta int) domain.Priority {
	order := []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}
	for i, p := range order {
		if p == c.priority {
			return order[(i+delta+len(order))%len(order)]
		}
	}
	return domain.PriorityMedium
}

// View renders the form
func (c *CreateTaskOverlay) View() string {
	var b strings.Builder

	b.WriteString(c.label("Title:", focusTitle))
	b.WriteString("  ")
	b.WriteString(c.title.View())
	b.WriteString("\n\n")

	b.WriteString(c.label("Description:", focusDescription))
	b.WriteString("\n")
	b.WriteString(c.description.View())
	b.WriteString("\n\n")

	b.WriteString(c.label("Duration:", focusDuration))
	b.WriteString("  ")
	b.WriteString(c.renderDurationSelector())
	b.WriteString("\n\n")

	b.WriteString(c.label("Priority:", focusPriority))
	b.WriteString("  ")
	b.WriteString(c.renderPrioritySelector())
	b.WriteString("\n\n")

	b.WriteString(c.label("Category:", focusCategory))
	b.WriteString("  ")
	b.WriteString(c.renderCategorySelector())
	b.WriteString("\n\n")

	b.WriteString(c.styles.Separator.Render(strings.Repeat("─", 60)))
	b.WriteString("\n\n")

	submitStyle := c.styles.MenuItem
	if c.focusIndex == focusSubmit {
		submitStyle = c.styles.MenuItemActive
	}
	b.WriteString(submitStyle.Render("[ Create Task ]"))
	b.WriteString("\n\n")

	hints := []string{
		c.styles.MenuKey.Render("Tab") + " " + c.styles.Footer.Render("Switch fields"),
		c.styles.MenuKey.Render("Ctrl+S") + " " + c.styles.Footer.Render("Submit"),
		c.styles.MenuKey.Render("Esc") + " " + c.styles.Footer.Render("Cancel"),
	}
	b.WriteString(c.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (c *CreateTaskOverlay) label(text string, field int) string {
	if c.focusIndex == field {
		return c.styles.LabelFocused.Render(text)
	}
	return c.styles.Label.Render(text)
}

func (c *CreateTaskOverlay) renderDurationSelector() string {
	var parts []string
	for i, minutes := range domain.DurationChoices {
		style := c.styles.MenuItem
		indicator := " "
		if i == c.durationIdx {
			style = c.styles.MenuItemActive
			indicator = "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%dm]", indicator, minutes)))
	}
	return strings.Join(parts, " ")
}

func (c *CreateTaskOverlay) renderPrioritySelector() string {
	priorities := []struct {
		key string
		pri domain.Priority
	}{
		{"1", domain.PriorityLow},
		{"2", domain.PriorityMedium},
		{"3", domain.PriorityHigh},
	}

	var parts []string
	for _, p := range priorities {
		style := c.styles.MenuItem
		indicator := " "
		if p.pri == c.priority {
			style = c.styles.MenuItemActive
			indicator = "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%s %s]", indicator, p.key, p.pri)))
	}
	return strings.Join(parts, " ")
}

func (c *CreateTaskOverlay) renderCategorySelector() string {
	var parts []string
	for i, cat := range domain.Categories {
		style := c.styles.MenuItem
		indicator := " "
		if i == c.categoryIdx {
			style = c.styles.MenuItemActive
			indicator = "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%s]", indicator, cat)))
	}
	return strings.Join(parts, " ")
}

// submit emits a TaskCreatedMsg and closes the overlay
func (c *CreateTaskOverlay) submit() tea.Cmd {
	title := strings.TrimSpace(c.title.Value())
	if title == "" {
		return nil
	}

	return tea.Batch(
		func() tea.Msg {
			return TaskCreatedMsg{
				Title:           title,
				Description:     strings.TrimSpace(c.description.Value()),
				DurationMinutes: domain.DurationChoices[c.durationIdx],
				Priority:        c.priority,
				Category:        domain.Categories[c.categoryIdx],
			}
		},
		func() tea.Msg { return CloseOverlayMsg{} },
	)
}

// Title returns the overlay title
func (c *CreateTaskOverlay) Title() string {
	return "Create New Task"
}

// Size returns the overlay dimensions
func (c *CreateTaskOverlay) Size() (width, height int) {
	return 70, 24
}
