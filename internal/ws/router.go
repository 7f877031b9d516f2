package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// ConnContext accompanies every dispatched event.
type ConnContext struct {
	ID     ConnID
	Server *Server
}

// internal (untyped) handler signature.
type rawHandler func(c *ConnContext, body json.RawMessage) error

// Router keeps a map[event]handler, à-la gin.Engine.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]rawHandler
}

func NewRouter() *Router { return &Router{handlers: make(map[string]rawHandler)} }

// Register binds an event to a strongly-typed handler.
func Register[Req any](
	r *Router,
	event string,
	h func(c *ConnContext, req Req) error,
) {
	if event == "" {
		panic("ws router: empty event")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[event] = func(c *ConnContext, body json.RawMessage) error {
		var req Req
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				return err
			}
		}
		return h(c, req)
	}
}

// dispatch is called by the server's reader loop. The protocol is
// fire-and-forget: failures are logged server-side and no error frame
// goes back to the sender.
func (r *Router) dispatch(c *ConnContext, env Envelope) {
	r.mu.RLock()
	h, ok := r.handlers[env.Event]
	r.mu.RUnlock()

	if !ok {
		zap.L().Warn("ws.unknown_event",
			zap.String("conn", string(c.ID)),
			zap.String("event", env.Event))
		return
	}
	if err := h(c, env.Body); err != nil {
		zap.L().Warn("ws.event_dropped",
			zap.String("conn", string(c.ID)),
			zap.String("event", env.Event),
			zap.Error(err))
	}
}
