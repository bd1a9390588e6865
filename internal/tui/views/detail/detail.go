// Package detail renders a scrollable markdown overlay: a task's section
// of the task document, or an action result.
package detail

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/command-center/backend/internal/tui/theme"
)

const (
	minWidth  = 40
	minHeight = 8
	chrome    = 6 // border, title, rule, footer
)

var (
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1)

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorBright)

	styleFooter = lipgloss.NewStyle().
			Foreground(theme.ColorDimmed)
)

// Model holds the overlay state.
type Model struct {
	Title    string
	markdown string
	width    int
	viewport viewport.Model
}

// New renders markdown into a viewport sized to fit width x height.
func New(title, markdown string, width, height int) Model {
	m := Model{Title: title, markdown: markdown}
	m.SetSize(width, height)
	return m
}

// SetSize re-wraps the content for a new terminal size.
func (m *Model) SetSize(width, height int) {
	width = max(width, minWidth)
	height = max(height, minHeight)
	m.width = width

	inner := width - 4
	m.viewport = viewport.New(inner, height-chrome)
	m.viewport.SetContent(Render(m.markdown, inner))
}

// Render turns markdown into styled terminal text wrapped at width. It
// falls back to the raw text if glamour fails.
func Render(markdown string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

// Update forwards scroll keys to the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(m.Title) + "\n")
	b.WriteString(strings.Repeat("─", m.width-4) + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(styleFooter.Render("[↑/↓] scroll  [esc] close"))
	return stylePanel.Width(m.width - 2).Render(b.String())
}
