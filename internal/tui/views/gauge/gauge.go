// Package gauge renders a percentage bar that eases toward new readings
// with a harmonica spring instead of jumping.
package gauge

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/command-center/backend/internal/tui/theme"
)

// FPS is the animation frame rate the caller should tick at.
const FPS = 30

const settleEpsilon = 0.01

// Model is one animated gauge. Values are percentages in [0, 100].
type Model struct {
	Label string
	Width int

	target float64
	pos    float64
	vel    float64
	spring harmonica.Spring
}

func New(label string, width int) Model {
	return Model{
		Label:  label,
		Width:  width,
		spring: harmonica.NewSpring(harmonica.FPS(FPS), 6.0, 1.0),
	}
}

// SetTarget sets the value the gauge moves toward. Out-of-range input is
// clamped.
func (m *Model) SetTarget(pct float64) {
	m.target = clamp(pct)
}

func (m Model) Target() float64 { return m.target }

// Position is the currently displayed value.
func (m Model) Position() float64 { return m.pos }

// Step advances the animation by one frame.
func (m *Model) Step() {
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.target)
	if m.Settled() {
		m.pos, m.vel = m.target, 0
	}
}

// Settled reports whether the gauge has reached its target.
func (m Model) Settled() bool {
	return math.Abs(m.pos-m.target) < settleEpsilon && math.Abs(m.vel) < settleEpsilon
}

func (m Model) View() string {
	width := m.Width
	if width < 4 {
		width = 4
	}

	frac := clamp(m.pos) / 100
	filled := int(math.Round(frac * float64(width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	bar = lipgloss.NewStyle().Foreground(theme.UsageColor(frac)).Render(bar)

	label := theme.StyleDimmed.Render(fmt.Sprintf("%-4s", m.Label))
	return fmt.Sprintf("%s %s %5.1f%%", label, bar, m.target)
}

func clamp(pct float64) float64 {
	switch {
	case math.IsNaN(pct), pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
