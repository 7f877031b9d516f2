package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// sendQueueSize bounds the per-connection outbound queue. A connection that
// cannot drain this many frames is considered stuck and frames are dropped.
const sendQueueSize = 64

type clientConn struct {
	rawConn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClientConn(raw *websocket.Conn) *clientConn {
	return &clientConn{
		rawConn: raw,
		send:    make(chan []byte, sendQueueSize),
	}
}

// enqueue hands one frame to the writer goroutine without ever blocking the
// caller. Returns false when the connection is closed or its queue is full.
func (c *clientConn) enqueue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// shutdown closes the outbound queue, which makes writePump send a close
// frame and tear the transport down. Safe to call more than once.
func (c *clientConn) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump is the single writer for the connection: queued frames plus
// keep-alive pings, each under a write deadline.
func (c *clientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.rawConn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.rawConn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.rawConn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.rawConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
