package stream

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingInterval = 30 * time.Second
)

// WSClient mirrors the SSE stream over a WebSocket. Each event is written
// as a JSON text frame {"event": name, "data": payload}.
type WSClient struct {
	*queue
	conn *websocket.Conn
}

func NewWSClient(conn *websocket.Conn, buffer int) *WSClient {
	return &WSClient{
		queue: newQueue(buffer),
		conn:  conn,
	}
}

// ServeWS registers conn with the hub and blocks until the peer goes away
// or the hub drops the client. The connection is closed on return.
func ServeWS(conn *websocket.Conn, hub *Hub, buffer int) error {
	c := NewWSClient(conn, buffer)
	if err := hub.Register(c); err != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error())
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
		return err
	}

	go c.writePump(hub)
	err := c.readPump()
	hub.Unregister(c)
	return err
}

func (c *WSClient) writePump(hub *Hub) {
	ping := time.NewTicker(wsPingInterval)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		case ev := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteJSON(ev); err != nil {
				hub.Unregister(c)
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				hub.Unregister(c)
				return
			}
		}
	}
}

// readPump discards inbound frames; its only job is to notice the peer
// closing and to answer pings.
func (c *WSClient) readPump() error {
	c.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return err
		}
	}
}
