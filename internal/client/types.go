// Package client talks to the Command Center API over HTTP and WebSocket.
// Types mirror the wire format without importing the server packages.
package client

import (
	"encoding/json"
	"time"
)

// EventName identifies a push-stream message.
type EventName string

const (
	EventDashboard EventName = "dashboard"
	EventUpdate    EventName = "update"
	EventAction    EventName = "action"
)

// Envelope is one message on /api/ws.
type Envelope struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type TokenUsage struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

type Session struct {
	Key    string     `json:"key"`
	Model  string     `json:"model"`
	Tokens TokenUsage `json:"tokens"`
	Cost   float64    `json:"cost"`
	Age    string     `json:"age"`
	Status string     `json:"status"`
}

type Task struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Owner  string `json:"owner"`
	Text   string `json:"text"`
}

type HostStats struct {
	CPUPercent     float64 `json:"cpuPercent"`
	MemUsedPercent float64 `json:"memUsedPercent"`
	Load1          float64 `json:"load1"`
	UptimeSeconds  uint64  `json:"uptimeSeconds"`
	Error          string  `json:"error,omitempty"`
}

type CostSummary struct {
	Today   float64 `json:"today"`
	Week    float64 `json:"week"`
	Month   float64 `json:"month"`
	PerTask float64 `json:"perTask"`
}

// Snapshot mirrors GET /api/dashboard. Error is set instead of the other
// fields when the server could not gather data.
type Snapshot struct {
	Timestamp string         `json:"timestamp"`
	Sessions  []Session      `json:"sessions"`
	Tasks     []Task         `json:"tasks"`
	System    map[string]any `json:"system"`
	Host      *HostStats     `json:"host,omitempty"`
	Costs     CostSummary    `json:"costs"`
	Mode      string         `json:"mode"`
	Error     string         `json:"error,omitempty"`
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Time parses Timestamp, returning the zero time when it is malformed.
func (s *Snapshot) Time() time.Time {
	t, err := time.Parse(timestampLayout, s.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

type ConnectedPayload struct {
	Message string `json:"message"`
}

type UpdatePayload struct {
	Timestamp string `json:"timestamp"`
}

type ActionPayload struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}
