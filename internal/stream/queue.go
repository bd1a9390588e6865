package stream

import "sync"

// queue is the buffered mailbox shared by the SSE and WebSocket clients.
// The hub side calls Send and Close; the connection side drains send until
// done is closed.
type queue struct {
	send chan Event
	done chan struct{}
	once sync.Once
}

func newQueue(size int) *queue {
	if size < 1 {
		size = 1
	}
	return &queue{
		send: make(chan Event, size),
		done: make(chan struct{}),
	}
}

func (q *queue) Send(ev Event) error {
	select {
	case <-q.done:
		return ErrClientClosed
	default:
	}

	select {
	case q.send <- ev:
		return nil
	default:
		return ErrSlowClient
	}
}

func (q *queue) Close() {
	q.once.Do(func() { close(q.done) })
}
