package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
)

const (
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
	writeTimeout       = 10 * time.Second
	readTimeout        = 75 * time.Second // server pings every 30s
)

// WSClient manages the WebSocket connection to /api/ws.
type WSClient struct {
	url    string
	dialer *websocket.Dialer

	mu    sync.Mutex
	conn  *websocket.Conn
	delay time.Duration
}

// NewWSClient creates a client that connects to the given WebSocket URL.
func NewWSClient(url string) *WSClient {
	return &WSClient{
		url:    url,
		dialer: websocket.DefaultDialer,
		delay:  reconnectBaseDelay,
	}
}

// StreamURL turns a server base URL ("http://host:port") into the
// WebSocket stream URL.
func StreamURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing server url: %w", err)
	}
	switch u.Scheme {
	case "http", "":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/ws"
	return u.String(), nil
}

// --- Bubble Tea messages ---

// WSConnectedMsg is sent when the WebSocket connects.
type WSConnectedMsg struct{}

// WSDisconnectedMsg is sent when the connection drops.
type WSDisconnectedMsg struct{ Err error }

// WSHelloMsg is the server's greeting on registration.
type WSHelloMsg struct{ Payload ConnectedPayload }

// WSUpdateMsg signals that fresh dashboard data is available.
type WSUpdateMsg struct{ Payload UpdatePayload }

// WSActionMsg reports an action dispatched by any client.
type WSActionMsg struct{ Payload ActionPayload }

// Listen returns a Bubble Tea command that dials until it connects or ctx
// ends, backing off exponentially between attempts.
func (c *WSClient) Listen(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		for {
			if ctx.Err() != nil {
				return nil
			}

			conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
			if err != nil {
				delay := c.nextDelay()
				log.Printf("ws dial error: %v (retry in %v)", err, delay)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(delay):
				}
				continue
			}

			c.mu.Lock()
			c.conn = conn
			c.delay = reconnectBaseDelay
			c.mu.Unlock()
			return WSConnectedMsg{}
		}
	}
}

func (c *WSClient) nextDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.delay
	c.delay = min(c.delay*2, reconnectMaxDelay)
	return d
}

// ReadLoop returns a Bubble Tea command that reads until the next message
// the UI cares about. Start it after WSConnectedMsg and again after each
// message it delivers.
func (c *WSClient) ReadLoop(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return WSDisconnectedMsg{Err: fmt.Errorf("no connection")}
		}

		conn.SetPingHandler(func(data string) error {
			conn.SetReadDeadline(time.Now().Add(readTimeout))
			return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeTimeout))
		})

		for {
			if ctx.Err() != nil {
				c.drop(conn)
				return nil
			}

			conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.drop(conn)
				return WSDisconnectedMsg{Err: err}
			}

			var env Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				continue
			}
			if msg := dispatch(env); msg != nil {
				return msg
			}
		}
	}
}

// Close drops the current connection, if any.
func (c *WSClient) Close() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		c.drop(conn)
	}
}

func (c *WSClient) drop(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
	conn.Close()
}

func dispatch(env Envelope) tea.Msg {
	switch env.Event {
	case EventDashboard:
		var p ConnectedPayload
		if json.Unmarshal(env.Data, &p) == nil {
			return WSHelloMsg{Payload: p}
		}
	case EventUpdate:
		var p UpdatePayload
		if json.Unmarshal(env.Data, &p) == nil {
			return WSUpdateMsg{Payload: p}
		}
	case EventAction:
		var p ActionPayload
		if json.Unmarshal(env.Data, &p) == nil {
			return WSActionMsg{Payload: p}
		}
	}
	return nil
}
