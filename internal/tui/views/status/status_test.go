package status

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestView(t *testing.T) {
	now := time.Date(2026, 1, 30, 10, 0, 30, 0, time.UTC)

	tests := []struct {
		name  string
		model Model
		want  []string
	}{
		{
			name:  "no data",
			model: Model{Width: 100},
			want:  []string{"Connecting...", "unknown hours", "no data yet"},
		},
		{
			name: "connected with snapshot",
			model: Model{
				Connected: true,
				Mode:      "family_hours",
				Updated:   now.Add(-30 * time.Second),
				Width:     100,
			},
			want: []string{"Connected", "family hours", "updated 30 seconds ago"},
		},
		{
			name:  "last action stays on one line",
			model: Model{LastAction: "deploy_build", Width: 120},
			want:  []string{"no data yet | last action: deploy_build"},
		},
		{
			name:  "error and action",
			model: Model{Connected: true, Mode: "quiet_hours", LastAction: "spawn_subagent", Err: "boom", Width: 100},
			want:  []string{"quiet hours", "last action: spawn_subagent", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.model.Now = func() time.Time { return now }
			v := ansi.Strip(tt.model.View())
			for _, w := range tt.want {
				if !strings.Contains(v, w) {
					t.Errorf("View() missing %q:\n%s", w, v)
				}
			}
		})
	}
}
