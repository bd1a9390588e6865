package stream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClient records delivered events and can be told to fail writes.
type fakeClient struct {
	mu     sync.Mutex
	events []Event
	fail   bool
	closed int
}

func (f *fakeClient) Send(ev Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeClient) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
}

func (f *fakeClient) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeClient) snapshot() ([]Event, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...), f.closed
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 30, 10, 0, 1, 5e8, time.UTC)
}

func TestRegisterSendsConnectedEvent(t *testing.T) {
	h := NewHub(time.Hour, 0)
	c := &fakeClient{}

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if h.ClientCount() != 1 {
		t.Fatalf("ClientCount = %d, want 1", h.ClientCount())
	}

	events, _ := c.snapshot()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Name != EventDashboard {
		t.Errorf("event name = %q, want %q", events[0].Name, EventDashboard)
	}
	payload, ok := events[0].Data.(ConnectedPayload)
	if !ok || payload.Message != "Connected to Command Center" {
		t.Errorf("connected payload = %#v", events[0].Data)
	}
}

func TestBroadcastSendsTimestamp(t *testing.T) {
	h := NewHub(time.Hour, 0)
	h.now = fixedNow

	a, b := &fakeClient{}, &fakeClient{}
	h.Register(a)
	h.Register(b)
	h.Broadcast()

	for name, c := range map[string]*fakeClient{"a": a, "b": b} {
		events, _ := c.snapshot()
		if len(events) != 2 {
			t.Fatalf("client %s: expected 2 events, got %d", name, len(events))
		}
		last := events[1]
		if last.Name != EventUpdate {
			t.Errorf("client %s: event = %q, want %q", name, last.Name, EventUpdate)
		}
		payload, ok := last.Data.(UpdatePayload)
		if !ok {
			t.Fatalf("client %s: payload type %T", name, last.Data)
		}
		if payload.Timestamp != "2026-01-30T10:00:01.500Z" {
			t.Errorf("client %s: timestamp = %q", name, payload.Timestamp)
		}
	}
}

func TestBroadcastRemovesFailedClient(t *testing.T) {
	h := NewHub(time.Hour, 0)
	healthy, broken := &fakeClient{}, &fakeClient{}
	h.Register(healthy)
	h.Register(broken)

	broken.setFail(true)
	h.Broadcast()

	if got := h.ClientCount(); got != 1 {
		t.Fatalf("ClientCount after failed write = %d, want 1", got)
	}
	_, closed := broken.snapshot()
	if closed != 1 {
		t.Errorf("broken client closed %d times, want 1", closed)
	}

	// The next tick must not touch the removed client again.
	broken.setFail(false)
	h.Broadcast()

	brokenEvents, _ := broken.snapshot()
	if len(brokenEvents) != 1 {
		t.Errorf("removed client received %d events, want only the connected event", len(brokenEvents))
	}
	healthyEvents, _ := healthy.snapshot()
	if len(healthyEvents) != 3 {
		t.Errorf("healthy client received %d events, want 3", len(healthyEvents))
	}
}

func TestRegisterFailingClientIsDropped(t *testing.T) {
	h := NewHub(time.Hour, 0)
	c := &fakeClient{fail: true}

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	h := NewHub(time.Hour, 0)
	c := &fakeClient{}
	h.Register(c)

	h.Unregister(c)
	h.Unregister(c)

	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
	if _, closed := c.snapshot(); closed != 1 {
		t.Errorf("Close called %d times, want 1", closed)
	}
}

func TestRegisterMaxConnections(t *testing.T) {
	const maxConns = 2
	h := NewHub(time.Hour, maxConns)

	var clients []*fakeClient
	for i := 0; i < maxConns; i++ {
		c := &fakeClient{}
		if err := h.Register(c); err != nil {
			t.Fatalf("Register[%d]: unexpected error: %v", i, err)
		}
		clients = append(clients, c)
	}

	extra := &fakeClient{}
	if err := h.Register(extra); !errors.Is(err, ErrTooManyConnections) {
		t.Fatalf("expected ErrTooManyConnections, got %v", err)
	}
	if events, _ := extra.snapshot(); len(events) != 0 {
		t.Error("rejected client should not receive the connected event")
	}

	h.Unregister(clients[0])
	if err := h.Register(extra); err != nil {
		t.Fatalf("Register after removal: %v", err)
	}
	if got := h.ClientCount(); got != maxConns {
		t.Errorf("ClientCount = %d, want %d", got, maxConns)
	}
}

func TestPublishCustomEvent(t *testing.T) {
	h := NewHub(time.Hour, 0)
	c := &fakeClient{}
	h.Register(c)

	h.Publish(Event{Name: EventAction, Data: ActionPayload{Action: "deploy_build"}})

	events, _ := c.snapshot()
	if len(events) != 2 || events[1].Name != EventAction {
		t.Fatalf("events = %+v", events)
	}
}

func TestRunBroadcastsUntilCancelled(t *testing.T) {
	h := NewHub(10*time.Millisecond, 0)
	c := &fakeClient{}
	h.Register(c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events, _ := c.snapshot(); len(events) >= 3 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if events, _ := c.snapshot(); len(events) < 3 {
		t.Errorf("expected at least 2 updates, got %d events", len(events))
	}
}

func TestCloseAll(t *testing.T) {
	h := NewHub(time.Hour, 0)
	a, b := &fakeClient{}, &fakeClient{}
	h.Register(a)
	h.Register(b)

	h.CloseAll()

	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
	for _, c := range []*fakeClient{a, b} {
		if _, closed := c.snapshot(); closed != 1 {
			t.Errorf("client closed %d times, want 1", closed)
		}
	}
}
