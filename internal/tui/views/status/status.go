package status

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/command-center/backend/internal/tui/theme"
)

// Model holds the status bar state.
type Model struct {
	Connected  bool
	Busy       string // spinner frame shown while a request is in flight
	Mode       string
	Updated    time.Time
	LastAction string
	Err        string
	Width      int

	Now func() time.Time
}

// New creates a status bar model.
func New() Model {
	return Model{Now: time.Now}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Connected")
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Connecting...")
	}

	modeStr := lipgloss.NewStyle().Foreground(theme.ModeColor(m.Mode)).Render(theme.ModeLabel(m.Mode) + " hours")

	age := "no data yet"
	if !m.Updated.IsZero() {
		age = "updated " + humanize.RelTime(m.Updated, m.Now(), "ago", "from now")
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + modeStr + sep + theme.StyleDimmed.Render(age)
	if m.Busy != "" {
		content += " " + m.Busy
	}
	if m.LastAction != "" {
		content += sep + "last action: " + m.LastAction
	}
	if m.Err != "" {
		content += sep + theme.StyleError.Render(m.Err)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
