// Package theme provides the Lip Gloss palette and shared styles for the
// terminal dashboard. It is a leaf package with no internal imports.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Model colors.
var (
	ColorOpus    = lipgloss.Color("#a855f7")
	ColorSonnet  = lipgloss.Color("#3b82f6")
	ColorHaiku   = lipgloss.Color("#22c55e")
	ColorDefault = lipgloss.Color("#9ca3af")
)

// Mode colors.
var (
	ColorQuiet  = lipgloss.Color("#7c3aed")
	ColorFamily = lipgloss.Color("#d97706")
	ColorActive = lipgloss.Color("#22c55e")
)

// Usage bar thresholds.
var (
	ColorUsageLow  = lipgloss.Color("#22c55e") // <50%
	ColorUsageMid  = lipgloss.Color("#d97706") // 50-80%
	ColorUsageHigh = lipgloss.Color("#dc2626") // >80%
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorAccent  = lipgloss.Color("#2563eb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// ModelColor returns the color for a model name.
func ModelColor(model string) lipgloss.Color {
	switch {
	case strings.Contains(model, "opus"):
		return ColorOpus
	case strings.Contains(model, "sonnet"):
		return ColorSonnet
	case strings.Contains(model, "haiku"):
		return ColorHaiku
	default:
		return ColorDefault
	}
}

// ModeColor returns the color for a dashboard mode.
func ModeColor(mode string) lipgloss.Color {
	switch mode {
	case "quiet_hours":
		return ColorQuiet
	case "family_hours":
		return ColorFamily
	case "active_hours":
		return ColorActive
	default:
		return ColorDefault
	}
}

// ModeLabel shortens "family_hours" to "family".
func ModeLabel(mode string) string {
	if mode == "" {
		return "unknown"
	}
	return strings.TrimSuffix(mode, "_hours")
}

// TaskStatusColor picks a color from the free-form task status text.
func TaskStatusColor(status string) lipgloss.Color {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "done"), strings.Contains(s, "complete"):
		return ColorHealthy
	case strings.Contains(s, "block"), strings.Contains(s, "fail"):
		return ColorDanger
	case strings.Contains(s, "progress"), strings.Contains(s, "active"):
		return ColorAccent
	case strings.Contains(s, "wait"), strings.Contains(s, "review"):
		return ColorWarning
	default:
		return ColorDimmed
	}
}

// UsageColor returns the bar color for a utilization fraction.
func UsageColor(frac float64) lipgloss.Color {
	switch {
	case frac > 0.8:
		return ColorUsageHigh
	case frac > 0.5:
		return ColorUsageMid
	default:
		return ColorUsageLow
	}
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorDanger)
)
