// Package tui is the terminal dashboard: a Bubble Tea program fed by the
// /api/ws stream and /api/dashboard snapshots.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/command-center/backend/internal/client"
	"github.com/command-center/backend/internal/tui/theme"
	"github.com/command-center/backend/internal/tui/views/detail"
	"github.com/command-center/backend/internal/tui/views/gauge"
	"github.com/command-center/backend/internal/tui/views/panels"
	"github.com/command-center/backend/internal/tui/views/status"
)

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayTask
	OverlayResult
)

const gaugeWidth = 20

type snapshotMsg struct {
	snap *client.Snapshot
	err  error
}

type actionResultMsg struct {
	action string
	raw    json.RawMessage
	err    error
}

type frameMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	ws     *client.WSClient
	http   *client.HTTPClient
	ctx    context.Context
	cancel context.CancelFunc

	keys   KeyMap
	width  int
	height int

	snapshot *client.Snapshot
	selected int
	overlay  Overlay
	detail   detail.Model

	statusBar status.Model
	spinner   spinner.Model
	cpu       gauge.Model
	mem       gauge.Model
	animating bool

	connected bool
	fetching  bool
	now       func() time.Time
}

// New creates the root model. Either client may be nil in tests.
func New(ws *client.WSClient, http *client.HTTPClient) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ws:        ws,
		http:      http,
		ctx:       ctx,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		statusBar: status.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		cpu:       gauge.New("cpu", gaugeWidth),
		mem:       gauge.New("mem", gaugeWidth),
		now:       time.Now,
	}
}

// Init starts the WebSocket connection and the first fetch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.fetch()}
	if m.ws != nil {
		cmds = append(cmds, m.ws.Listen(m.ctx))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		if m.overlay != OverlayNone {
			m.detail.SetSize(m.overlayWidth(), m.overlayHeight())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case client.WSConnectedMsg:
		m.connected = true
		m.statusBar.Connected = true
		cmd := m.startFetch()
		return m, tea.Batch(m.readNext(), cmd)

	case client.WSDisconnectedMsg:
		m.connected = false
		m.statusBar.Connected = false
		if m.ws == nil {
			return m, nil
		}
		return m, m.ws.Listen(m.ctx)

	case client.WSHelloMsg:
		return m, m.readNext()

	case client.WSUpdateMsg:
		cmd := m.startFetch()
		return m, tea.Batch(m.readNext(), cmd)

	case client.WSActionMsg:
		m.statusBar.LastAction = msg.Payload.Action
		return m, m.readNext()

	case snapshotMsg:
		m.fetching = false
		if msg.err != nil {
			m.statusBar.Err = msg.err.Error()
			return m, nil
		}
		m.statusBar.Err = ""
		cmd := m.applySnapshot(msg.snap)
		return m, cmd

	case actionResultMsg:
		if msg.err != nil {
			m.statusBar.Err = msg.err.Error()
			return m, nil
		}
		m.statusBar.Err = ""
		m.openOverlay(OverlayResult, msg.action, resultMarkdown(msg.raw))
		return m, nil

	case frameMsg:
		m.cpu.Step()
		m.mem.Step()
		if m.cpu.Settled() && m.mem.Settled() {
			m.animating = false
			return m, nil
		}
		return m, frame()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay != OverlayNone {
		if key.Matches(msg, m.keys.Escape) {
			m.overlay = OverlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		if m.ws != nil {
			m.ws.Close()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if n := len(m.tasks()); n > 0 {
			m.selected = (m.selected + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if n := len(m.tasks()); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		tasks := m.tasks()
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.selected]
		m.openOverlay(OverlayTask, t.ID+": "+t.Title, t.Text)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.startFetch()
		return m, cmd

	case key.Matches(msg, m.keys.Status):
		return m, m.postAction("system_status")
	}

	return m, nil
}

func (m *Model) openOverlay(o Overlay, title, markdown string) {
	m.overlay = o
	m.detail = detail.New(title, markdown, m.overlayWidth(), m.overlayHeight())
}

func (m Model) overlayWidth() int  { return m.width - 4 }
func (m Model) overlayHeight() int { return m.height - 4 }

func (m Model) tasks() []client.Task {
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.Tasks
}

func (m *Model) applySnapshot(snap *client.Snapshot) tea.Cmd {
	m.snapshot = snap
	if m.selected >= len(snap.Tasks) {
		m.selected = max(len(snap.Tasks)-1, 0)
	}
	m.statusBar.Mode = snap.Mode
	m.statusBar.Updated = snap.Time()

	if snap.Host == nil {
		return nil
	}
	m.cpu.SetTarget(snap.Host.CPUPercent)
	m.mem.SetTarget(snap.Host.MemUsedPercent)
	if m.animating || (m.cpu.Settled() && m.mem.Settled()) {
		return nil
	}
	m.animating = true
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/gauge.FPS, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) readNext() tea.Cmd {
	if m.ws == nil {
		return nil
	}
	return m.ws.ReadLoop(m.ctx)
}

// startFetch marks a fetch in flight; overlapping update events share it.
func (m *Model) startFetch() tea.Cmd {
	if m.fetching || m.http == nil {
		return nil
	}
	m.fetching = true
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	if m.http == nil {
		return nil
	}
	hc, ctx := m.http, m.ctx
	return func() tea.Msg {
		snap, err := hc.GetDashboard(ctx)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) postAction(action string) tea.Cmd {
	if m.http == nil {
		return nil
	}
	hc, ctx := m.http, m.ctx
	return func() tea.Msg {
		raw, err := hc.PostAction(ctx, action, nil)
		return actionResultMsg{action: action, raw: raw, err: err}
	}
}

func resultMarkdown(raw json.RawMessage) string {
	var v any
	pretty := string(raw)
	if json.Unmarshal(raw, &v) == nil {
		if data, err := json.MarshalIndent(v, "", "  "); err == nil {
			pretty = string(data)
		}
	}
	return "```json\n" + pretty + "\n```"
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	bar := m.statusBar
	bar.Now = m.now
	if !m.connected || m.fetching {
		bar.Busy = m.spinner.View()
	}

	sections := []string{bar.View()}

	switch {
	case m.overlay != OverlayNone:
		sections = append(sections, m.detail.View())
	case m.snapshot == nil:
		sections = append(sections, m.renderWaiting())
	default:
		sections = append(sections, m.renderPanels())
	}

	sections = append(sections, theme.StyleDimmed.Render(m.keys.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWaiting() string {
	if m.connected {
		return theme.StyleDimmed.Render("  Loading dashboard...")
	}
	target := "server"
	if m.http != nil {
		target = m.http.BaseURL()
	}
	return lipgloss.Place(m.width, max(m.height-6, 3), lipgloss.Center, lipgloss.Center,
		theme.StyleError.Render("DISCONNECTED")+"\n"+
			theme.StyleDimmed.Render(fmt.Sprintf("Reconnecting to %s...", target)))
}

func (m Model) renderPanels() string {
	snap := m.snapshot
	half := m.width / 2

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panels.Sessions(snap.Sessions, half),
		panels.Costs(snap.Costs, m.width-half),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panels.System(snap.System, half),
		panels.Host(snap.Host, m.cpu.View(), m.mem.View(), m.now(), m.width-half),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		panels.Tasks(snap.Tasks, m.selected, m.width),
		bottom,
	)
}
