package ws

import "sync"

// Hub is the room membership manager: room code ➜ set of connection ids.
// Rooms are created lazily on first join and dropped again once empty.
type Hub struct {
	rooms sync.Map // roomCode ➜ *room
}

func NewHub() *Hub { return &Hub{} }

// Join adds the connection to the room, creating the room if needed.
// Idempotent: joining twice reports alreadyMember=true the second time.
func (h *Hub) Join(roomCode string, id ConnID) (alreadyMember bool) {
	for {
		v, _ := h.rooms.LoadOrStore(roomCode, newRoom())
		already, ok := v.(*room).add(id)
		if ok {
			return already
		}
		// Lost a race against the last member leaving; the entry is dead.
		h.rooms.CompareAndDelete(roomCode, v)
	}
}

// Leave removes the connection if present; unknown rooms and non-members
// are a no-op. The room entry is dropped once its set empties out.
func (h *Hub) Leave(roomCode string, id ConnID) {
	v, ok := h.rooms.Load(roomCode)
	if !ok {
		return
	}
	if v.(*room).remove(id) {
		h.rooms.CompareAndDelete(roomCode, v)
	}
}

// MembersOf returns the current membership. Unknown room codes yield an
// empty result, never an error.
func (h *Hub) MembersOf(roomCode string) []ConnID {
	v, ok := h.rooms.Load(roomCode)
	if !ok {
		return nil
	}
	return v.(*room).snapshot()
}

// MembersExcluding is MembersOf minus the sender; the audience for every
// "room except sender" broadcast.
func (h *Hub) MembersExcluding(roomCode string, excluded ConnID) []ConnID {
	members := h.MembersOf(roomCode)
	out := members[:0]
	for _, id := range members {
		if id != excluded {
			out = append(out, id)
		}
	}
	return out
}
