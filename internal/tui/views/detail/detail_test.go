package detail

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderKeepsText(t *testing.T) {
	out := ansi.Strip(Render("### TASK-007: Ship it\n\n**Status:** Done\n\nSome notes.", 60))
	for _, want := range []string{"TASK-007: Ship it", "Status", "Done", "Some notes."} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestViewShowsTitleAndFooter(t *testing.T) {
	m := New("TASK-007: Ship it", "body text", 80, 24)
	v := ansi.Strip(m.View())
	if !strings.Contains(v, "TASK-007: Ship it") {
		t.Errorf("title missing:\n%s", v)
	}
	if !strings.Contains(v, "[esc] close") {
		t.Errorf("footer missing:\n%s", v)
	}
	if !strings.Contains(v, "body") {
		t.Errorf("content missing:\n%s", v)
	}
}

func TestTinyTerminalUsesMinimumSize(t *testing.T) {
	m := New("t", "x", 5, 2)
	if m.width != minWidth {
		t.Errorf("width = %d, want %d", m.width, minWidth)
	}
	if m.viewport.Height != minHeight-chrome {
		t.Errorf("viewport height = %d, want %d", m.viewport.Height, minHeight-chrome)
	}
}

func TestScroll(t *testing.T) {
	long := strings.Repeat("line\n\n", 100)
	m := New("long", long, 80, 20)
	if m.viewport.YOffset != 0 {
		t.Fatalf("initial offset = %d", m.viewport.YOffset)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.viewport.YOffset == 0 {
		t.Error("down should scroll the viewport")
	}
}
