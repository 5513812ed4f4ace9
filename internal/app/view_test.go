package app

import (
	"strings"
	"testing"
)

func TestViewRendersPanes(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "Tasks (2)") {
		t.Errorf("expected task pane header, got:\n%s", view)
	}
	if !strings.Contains(view, "Schedule (0/34)") {
		t.Errorf("expected schedule pane header, got:\n%s", view)
	}
	if !strings.Contains(view, "NORMAL") {
		t.Error("expected status bar mode badge")
	}
	if !strings.Contains(view, "Write report") {
		t.Error("expected task titles in the view")
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 0
	m.height = 0

	if m.View() != "Loading..." {
		t.Error("expected placeholder before the first WindowSizeMsg")
	}
}

func TestViewShowsOverlayCentered(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "?")
	view := m.View()
	if !strings.Contains(view, "Help") {
		t.Errorf("expected help overlay title, got:\n%s", view)
	}
}

func TestViewShowsToast(t *testing.T) {
	m, _ := newTestModel(t)
	m.addToast(ToastSuccess, "Task created")

	if !strings.Contains(m.View(), "Task created") {
		t.Error("expected toast text in the view")
	}
}
