package connection

import (
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("connection not found")
	ErrAlreadyExists = errors.New("connection already exists")
	ErrClosed        = errors.New("connection closed")
	ErrSlowConsumer  = errors.New("send queue full")
)

const defaultQueueSize = 32

// wsConn is the subset of *websocket.Conn the wrapper needs.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
	Close() error
}

// Conn wraps a websocket connection with a buffered outbound queue drained
// by a single writer goroutine, so a slow peer never blocks the caller.
// Send is non-blocking: a full queue drops this connection only.
type Conn struct {
	ws        wsConn
	sendCh    chan any
	done      chan struct{}
	closeOnce sync.Once
}

func NewConn(ws wsConn, queueSize int) *Conn {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	c := &Conn{
		ws:     ws,
		sendCh: make(chan any, queueSize),
		done:   make(chan struct{}),
	}
	go c.writePump()

	return c
}

func (c *Conn) writePump() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.sendCh:
			if err := c.ws.WriteJSON(msg); err != nil {
				c.Close()
				return
			}
		}
	}
}

func (c *Conn) Send(msg any) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.sendCh <- msg:
		return nil
	default:
		// peer is not draining its queue
		c.Close()
		return ErrSlowConsumer
	}
}

func (c *Conn) ReadMessage() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

// Done is closed once the connection is shut down.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}
