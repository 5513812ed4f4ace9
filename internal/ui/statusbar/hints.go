package statusbar

import "github.com/timeboxpro/timebox/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "Tab: panes  j/k: move  n: new  m: move  s: start  x: stop  ?: help  q: quit"
	case types.ModeGoto:
		return "g: top  e: end  t: tasks  s: schedule  Esc: cancel"
	default:
		return ""
	}
}
