package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 25 * time.Second // must be < pongWait
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true }, // dev-only
}

// Server supervises connection lifecycles and routes room-scoped events.
type Server struct {
	hub      *Hub
	registry *Registry
	router   *Router
}

func NewServer(hub *Hub, registry *Registry) *Server {
	srv := &Server{
		hub:      hub,
		registry: registry,
		router:   NewRouter(),
	}
	srv.registerHandlers() // ← all WS events configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *Server) Handle(ginCtx *gin.Context) {
	rawConn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	// ─────────────────── Client connected ─────────────────────
	conn := newClientConn(rawConn)
	id := s.registry.Register(conn)
	go conn.writePump()

	// Connection-directed ack, not room-scoped.
	s.sendTo(id, EvtConnected, ConnectedBody{SocketID: string(id)})
	zap.L().Info("ws.connected",
		zap.String("conn", string(id)),
		zap.String("remote", ginCtx.Request.RemoteAddr))

	go s.reader(id, conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *Server) reader(id ConnID, conn *clientConn) {
	defer s.disconnect(id)

	conn.rawConn.SetReadLimit(maxMessageSize)
	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := conn.rawConn.ReadMessage()
		if err != nil {
			// Protocol errors are a precursor to disconnect, nothing more.
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Warn("ws.read", zap.String("conn", string(id)), zap.Error(err))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			zap.L().Warn("ws.bad_frame", zap.String("conn", string(id)), zap.Error(err))
			continue
		}
		s.router.dispatch(&ConnContext{ID: id, Server: s}, env)
	}
}

// disconnect tears the connection down and notifies every room it was
// still a member of. Safe to call twice; the second call is a no-op.
func (s *Server) disconnect(id ConnID) {
	rooms := s.registry.Unregister(id)
	if rooms == nil {
		return
	}

	for roomCode, playerID := range rooms {
		s.hub.Leave(roomCode, id)
		s.broadcast(roomCode, EvtPlayerLeft, PlayerLeftBody{
			PlayerID: playerID,
			SocketID: string(id),
		})
	}
	zap.L().Info("ws.disconnected", zap.String("conn", string(id)))
}

// sendTo delivers one event to one connection.
func (s *Server) sendTo(id ConnID, event string, body any) {
	frame, err := marshalEnvelope(event, body)
	if err != nil {
		zap.L().Error("ws.marshal", zap.String("event", event), zap.Error(err))
		return
	}
	s.registry.SendTo(id, frame)
}

// broadcast fans an event out to every current member of the room.
func (s *Server) broadcast(roomCode, event string, body any) {
	s.deliver(s.hub.MembersOf(roomCode), event, body)
}

// broadcastExcept fans an event out to the room minus the sender.
func (s *Server) broadcastExcept(roomCode string, sender ConnID, event string, body any) {
	s.deliver(s.hub.MembersExcluding(roomCode, sender), event, body)
}

// deliver marshals once and enqueues per recipient independently, so one
// slow connection never stalls the rest of the fan-out.
func (s *Server) deliver(targets []ConnID, event string, body any) {
	if len(targets) == 0 {
		return
	}
	frame, err := marshalEnvelope(event, body)
	if err != nil {
		zap.L().Error("ws.marshal", zap.String("event", event), zap.Error(err))
		return
	}
	for _, id := range targets {
		s.registry.SendTo(id, frame)
	}
}
