// Package panels renders the snapshot sections of the terminal dashboard:
// sessions, tasks, system status, host metrics and costs.
package panels

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/command-center/backend/internal/client"
	"github.com/command-center/backend/internal/tui/theme"
)

const maxValueWidth = 48

func panel(title string, width int, lines []string) string {
	body := theme.StyleHeader.Render(title)
	if len(lines) > 0 {
		body += "\n" + strings.Join(lines, "\n")
	}
	w := width - 2
	if w < 20 {
		w = 20
	}
	return theme.StyleBorder.Width(w).Render(body)
}

// Sessions lists agent sessions with their context usage and cost.
func Sessions(sessions []client.Session, width int) string {
	var lines []string
	for _, s := range sessions {
		name := lipgloss.NewStyle().Foreground(theme.ModelColor(s.Model)).Render(s.Key)
		frac := 0.0
		if s.Tokens.Max > 0 {
			frac = float64(s.Tokens.Used) / float64(s.Tokens.Max)
		}
		usage := lipgloss.NewStyle().Foreground(theme.UsageColor(frac)).Render(
			fmt.Sprintf("%s / %s tok", humanize.Comma(int64(s.Tokens.Used)), humanize.Comma(int64(s.Tokens.Max))))
		lines = append(lines,
			name+"  "+theme.StyleDimmed.Render(s.Model),
			fmt.Sprintf("  %s  $%.2f  %s  %s", usage, s.Cost, s.Age, s.Status))
	}
	if len(lines) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("No sessions"))
	}
	return panel("Sessions", width, lines)
}

// Tasks lists tasks, marking the selected one.
func Tasks(tasks []client.Task, selected, width int) string {
	var lines []string
	for i, t := range tasks {
		prefix := "  "
		title := t.Title
		if i == selected {
			prefix = "> "
			title = theme.StyleSelected.Render(title)
		}
		status := lipgloss.NewStyle().Foreground(theme.TaskStatusColor(t.Status)).Render(t.Status)
		lines = append(lines, fmt.Sprintf("%s%s  %s  %s  %s",
			prefix, theme.StyleDimmed.Render(t.ID), title, status, theme.StyleDimmed.Render("@"+t.Owner)))
	}
	if len(lines) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("No active tasks"))
	}
	return panel(fmt.Sprintf("Tasks (%d)", len(tasks)), width, lines)
}

// System shows the status command's document, one top-level key per line.
func System(system map[string]any, width int) string {
	keys := make([]string, 0, len(system))
	for k := range system {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		v := formatValue(system[k])
		if k == "error" {
			lines = append(lines, theme.StyleError.Render(v))
			continue
		}
		lines = append(lines, theme.StyleDimmed.Render(k+":")+" "+v)
	}
	if len(lines) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("No status"))
	}
	return panel("System", width, lines)
}

func formatValue(v any) string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case map[string]any, []any:
		data, err := json.Marshal(x)
		if err != nil {
			s = fmt.Sprint(x)
		} else {
			s = string(data)
		}
	default:
		s = fmt.Sprint(x)
	}
	if len(s) > maxValueWidth {
		s = s[:maxValueWidth-1] + "…"
	}
	return s
}

// Host shows machine metrics. cpu and mem are pre-rendered gauges.
func Host(host *client.HostStats, cpu, mem string, now time.Time, width int) string {
	if host == nil {
		return panel("Host", width, []string{theme.StyleDimmed.Render("Host metrics disabled")})
	}

	lines := []string{
		cpu,
		mem,
		fmt.Sprintf("%s %.2f", theme.StyleDimmed.Render("load"), host.Load1),
	}
	if host.UptimeSeconds > 0 {
		boot := now.Add(-time.Duration(host.UptimeSeconds) * time.Second)
		lines = append(lines, theme.StyleDimmed.Render("up")+"   "+humanize.RelTime(boot, now, "", ""))
	}
	if host.Error != "" {
		lines = append(lines, theme.StyleError.Render(host.Error))
	}
	return panel("Host", width, lines)
}

// Costs shows the spend summary.
func Costs(c client.CostSummary, width int) string {
	row := func(label string, v float64) string {
		return fmt.Sprintf("%s $%s", theme.StyleDimmed.Render(fmt.Sprintf("%-9s", label)), humanize.FormatFloat("#,###.##", v))
	}
	return panel("Costs", width, []string{
		row("today", c.Today),
		row("week", c.Week),
		row("month", c.Month),
		row("per task", c.PerTask),
	})
}
