package overlay

import tea "github.com/charmbracelet/bubbletea"

// Stack holds the open overlays, topmost last. Only the top overlay
// receives input; closing it reveals the one beneath, so a task detail
// view can sit under a confirm dialog.
type Stack struct {
	stack []Overlay
}

// NewStack creates a stack with nothing open.
func NewStack() *Stack {
	return &Stack{}
}

// Push opens an overlay on top and returns its init command.
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.stack = append(s.stack, o)
	return o.Init()
}

// Pop closes the top overlay and returns it, nil when nothing is open.
func (s *Stack) Pop() Overlay {
	n := len(s.stack)
	if n == 0 {
		return nil
	}
	top := s.stack[n-1]
	s.stack = s.stack[:n-1]
	return top
}

// Current returns the top overlay without closing it, nil when empty.
func (s *Stack) Current() Overlay {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// IsEmpty reports whether anything is open.
func (s *Stack) IsEmpty() bool {
	return len(s.stack) == 0
}

// Clear drops every open overlay.
func (s *Stack) Clear() {
	s.stack = nil
}

// Update routes a message to the top overlay. A CloseOverlayMsg closes
// it instead of being forwarded.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	top := s.Current()
	if top == nil {
		return nil
	}

	if _, ok := msg.(CloseOverlayMsg); ok {
		s.Pop()
		return nil
	}

	model, cmd := top.Update(msg)
	if next, ok := model.(Overlay); ok {
		s.stack[len(s.stack)-1] = next
	}
	return cmd
}
