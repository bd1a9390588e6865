package stream

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-contrib/sse"
)

// SSEClient writes hub events to a text/event-stream response.
type SSEClient struct {
	*queue
	w  http.ResponseWriter
	rc *http.ResponseController
}

func NewSSEClient(w http.ResponseWriter, buffer int) *SSEClient {
	return &SSEClient{
		queue: newQueue(buffer),
		w:     w,
		rc:    http.NewResponseController(w),
	}
}

// ServeSSE registers a client for the request and streams events until the
// request is cancelled, the hub drops the client or a write fails. Nothing
// is written when registration fails.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, buffer int) error {
	c := NewSSEClient(w, buffer)
	if err := hub.Register(c); err != nil {
		return err
	}
	defer hub.Unregister(c)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := c.rc.Flush(); err != nil {
		return fmt.Errorf("flushing stream headers: %w", err)
	}

	return c.Serve(r.Context())
}

// Serve drains queued events onto the response.
func (c *SSEClient) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return ErrClientClosed
		case ev := <-c.send:
			if err := c.write(ev); err != nil {
				return err
			}
		}
	}
}

func (c *SSEClient) write(ev Event) error {
	ew := &errWriter{w: c.w}
	err := sse.Encode(ew, sse.Event{Event: ev.Name, Data: ev.Data})
	if err == nil {
		err = ew.err
	}
	if err != nil {
		return fmt.Errorf("writing %s event: %w", ev.Name, err)
	}
	if err := c.rc.Flush(); err != nil {
		return fmt.Errorf("flushing %s event: %w", ev.Name, err)
	}
	return nil
}

// errWriter keeps the first write error; sse.Encode drops errors from the
// event-name line.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
