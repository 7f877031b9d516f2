package ws

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConnID identifies one live connection. Never reused once the connection
// closes.
type ConnID string

// Registry owns every live connection plus the rooms each one has joined
// (room code ➜ playerId claimed on join). Nothing else mutates this state.
type Registry struct {
	mu     sync.RWMutex
	conns  map[ConnID]*clientConn
	joined map[ConnID]map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[ConnID]*clientConn),
		joined: make(map[ConnID]map[string]string),
	}
}

// Register assigns the connection a process-unique id. Never fails.
func (reg *Registry) Register(c *clientConn) ConnID {
	id := ConnID(uuid.NewString())

	reg.mu.Lock()
	reg.conns[id] = c
	reg.joined[id] = make(map[string]string)
	reg.mu.Unlock()

	return id
}

// Unregister drops the connection and returns the rooms it was still in,
// keyed by room code with the playerId it joined as. Idempotent: a second
// call returns nil.
func (reg *Registry) Unregister(id ConnID) map[string]string {
	reg.mu.Lock()
	c, ok := reg.conns[id]
	rooms := reg.joined[id]
	delete(reg.conns, id)
	delete(reg.joined, id)
	reg.mu.Unlock()

	if !ok {
		return nil
	}
	c.shutdown()
	return rooms
}

// TrackJoin records that the connection joined roomCode as playerID.
func (reg *Registry) TrackJoin(id ConnID, roomCode, playerID string) {
	reg.mu.Lock()
	if rooms, ok := reg.joined[id]; ok {
		rooms[roomCode] = playerID
	}
	reg.mu.Unlock()
}

// TrackLeave forgets a previously recorded join. No-op when absent.
func (reg *Registry) TrackLeave(id ConnID, roomCode string) {
	reg.mu.Lock()
	if rooms, ok := reg.joined[id]; ok {
		delete(rooms, roomCode)
	}
	reg.mu.Unlock()
}

// SendTo delivers one frame to one connection if it is still registered.
// Best-effort: a closed or backed-up connection is logged and skipped.
func (reg *Registry) SendTo(id ConnID, frame []byte) {
	reg.mu.RLock()
	c, ok := reg.conns[id]
	reg.mu.RUnlock()

	if !ok {
		zap.L().Debug("ws.send_skipped", zap.String("conn", string(id)))
		return
	}
	if !c.enqueue(frame) {
		zap.L().Warn("ws.send_dropped", zap.String("conn", string(id)))
	}
}
