// Package action executes the remote commands accepted on /api/action.
//
// deploy_build and spawn_subagent only acknowledge the request and hand
// back a tracking value; there is no execution backend behind them yet.
package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/command-center/backend/internal/dashboard"
	"github.com/command-center/backend/internal/stream"
	"github.com/google/uuid"
)

type Action string

const (
	DeployBuild   Action = "deploy_build"
	SpawnSubagent Action = "spawn_subagent"
	SystemStatus  Action = "system_status"
)

// Actions lists every action the dispatcher handles.
var Actions = []Action{DeployBuild, SpawnSubagent, SystemStatus}

func (a Action) Known() bool {
	switch a {
	case DeployBuild, SpawnSubagent, SystemStatus:
		return true
	}
	return false
}

type Request struct {
	Action Action         `json:"action"`
	Params map[string]any `json:"params"`
}

var ErrInvalidRequest = errors.New("invalid request")

// Decode parses an action request body. JSON errors and a null body are
// reported as ErrInvalidRequest.
func Decode(body []byte) (Request, error) {
	var req *Request
	if err := json.Unmarshal(body, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req == nil {
		return Request{}, fmt.Errorf("%w: null body", ErrInvalidRequest)
	}
	return *req, nil
}

type DeployResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Build   any    `json:"build"`
}

type SpawnResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	SessionKey string `json:"sessionKey"`
}

type ErrorResult struct {
	Error string `json:"error"`
}

// Notifier receives an event for every dispatched action.
type Notifier interface {
	Publish(ev stream.Event)
}

type Dispatcher struct {
	status   dashboard.StatusProber
	notifier Notifier // may be nil
	newKey   func() string
	now      func() time.Time
}

func NewDispatcher(status dashboard.StatusProber, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		status:   status,
		notifier: notifier,
		newKey:   func() string { return "subagent-" + uuid.NewString() },
		now:      time.Now,
	}
}

// Dispatch runs the handler for req.Action. Unknown actions are a normal
// result, not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) any {
	var result any
	switch req.Action {
	case DeployBuild:
		result = d.deployBuild(req.Params)
	case SpawnSubagent:
		result = d.spawnSubagent(req.Params)
	case SystemStatus:
		result = d.status.Probe(ctx)
	default:
		return ErrorResult{Error: "Unknown action"}
	}

	d.notify(req.Action)
	return result
}

func (d *Dispatcher) deployBuild(params map[string]any) DeployResult {
	var build any = "unknown"
	if v, ok := params["build"]; ok && truthy(v) {
		build = v
	}
	return DeployResult{
		Success: true,
		Message: "Build deployment queued",
		Build:   build,
	}
}

func (d *Dispatcher) spawnSubagent(map[string]any) SpawnResult {
	return SpawnResult{
		Success:    true,
		Message:    "Sub-agent spawn queued",
		SessionKey: d.newKey(),
	}
}

func (d *Dispatcher) notify(a Action) {
	if d.notifier == nil {
		return
	}
	d.notifier.Publish(stream.Event{
		Name: stream.EventAction,
		Data: stream.ActionPayload{
			Action:    string(a),
			Timestamp: d.now().UTC().Format(dashboard.TimestampFormat),
		},
	})
}

// truthy treats JSON null, false, 0 and "" as absent.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	}
	return true
}
