package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// StatusProber reports the state of the agent's subsystems.
type StatusProber interface {
	Probe(ctx context.Context) SystemStatus
}

// StatusUnavailable returns the document reported when the status command
// cannot be run or its output cannot be decoded.
func StatusUnavailable() SystemStatus {
	return SystemStatus{
		"error":    "Failed to get system status",
		"gateway":  "unknown",
		"telegram": "unknown",
	}
}

// StatusProbe runs an external command that prints a JSON object on stdout.
type StatusProbe struct {
	Command string
	Args    []string
	Timeout time.Duration
}

func NewStatusProbe(command string, args []string, timeout time.Duration) *StatusProbe {
	return &StatusProbe{Command: command, Args: args, Timeout: timeout}
}

// Probe never fails: every error collapses to StatusUnavailable.
func (p *StatusProbe) Probe(ctx context.Context) SystemStatus {
	status, err := p.run(ctx)
	if err != nil {
		log.Printf("status probe: %v", err)
		return StatusUnavailable()
	}
	return status
}

func (p *StatusProbe) run(ctx context.Context) (SystemStatus, error) {
	path, err := exec.LookPath(p.Command)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", p.Command, err)
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, p.Args...)
	cmd.Stdout = &stdout
	runErr := cmd.Run()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s: %w", p.Command, ctx.Err())
	}

	// A failing command may still print its own error document; prefer it
	// over the generic one.
	status, parseErr := parseStatus(stdout.Bytes())
	if parseErr == nil {
		return status, nil
	}
	if runErr != nil {
		return nil, fmt.Errorf("%s: %w", p.Command, runErr)
	}
	return nil, parseErr
}

var errEmptyStatus = errors.New("empty status output")

func parseStatus(out []byte) (SystemStatus, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, errEmptyStatus
	}
	var status SystemStatus
	if err := json.Unmarshal(out, &status); err != nil {
		return nil, fmt.Errorf("decoding status output: %w", err)
	}
	if status == nil {
		return nil, fmt.Errorf("status output is not an object")
	}
	return status, nil
}
