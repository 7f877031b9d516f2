package ws

import "sync"

// room holds one room's membership set behind its own lock, so operations
// on different room codes never contend with each other.
type room struct {
	mu      sync.Mutex
	members map[ConnID]struct{}
	closed  bool
}

func newRoom() *room { return &room{members: map[ConnID]struct{}{}} }

// add reports whether the id was already a member. ok is false when the
// room has been emptied and closed; callers must retry with a fresh entry.
func (r *room) add(id ConnID) (already, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false, false
	}
	_, already = r.members[id]
	r.members[id] = struct{}{}
	return already, true
}

// remove reports whether the room emptied out and was closed.
func (r *room) remove(id ConnID) (emptied bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members, id)
	if len(r.members) == 0 && !r.closed {
		r.closed = true
		return true
	}
	return false
}

func (r *room) snapshot() []ConnID {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := make([]ConnID, 0, len(r.members))
	for id := range r.members {
		members = append(members, id)
	}
	return members
}
