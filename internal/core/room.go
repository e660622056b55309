package core

// Room is the state of one game session: who is in it and what was said.
type Room struct {
	ID      string
	members []Member
	log     []ChatEvent
}

// NewRoom constructs a room with no members.
func NewRoom(id string) *Room {
	return &Room{ID: id}
}

// AddMember appends a member in join order.
func (r *Room) AddMember(m Member) {
	r.members = append(r.members, m)
}

// RemoveByName deletes every member with the given name. Returns how many were removed.
func (r *Room) RemoveByName(name string) int {
	return r.removeWhere(func(m Member) bool { return m.Name == name })
}

// RemoveByConn deletes the member owned by the given connection. Returns true if removed.
func (r *Room) RemoveByConn(connID string) bool {
	return r.removeWhere(func(m Member) bool { return m.ConnID == connID }) > 0
}

func (r *Room) removeWhere(match func(Member) bool) int {
	kept := r.members[:0]
	removed := 0
	for _, m := range r.members {
		if match(m) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	// Clear the tail so removed members don't linger in the backing array.
	for i := len(kept); i < len(r.members); i++ {
		r.members[i] = Member{}
	}
	r.members = kept
	return removed
}

// Record appends a chat event, dropping the oldest entries past limit (0 = unbounded).
func (r *Room) Record(ev ChatEvent, limit int) {
	r.log = append(r.log, ev)
	if limit > 0 && len(r.log) > limit {
		r.log = append(r.log[:0:0], r.log[len(r.log)-limit:]...)
	}
}

// Members returns a copy of the member list in join order.
func (r *Room) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

// Log returns a copy of the chat log.
func (r *Room) Log() []ChatEvent {
	out := make([]ChatEvent, len(r.log))
	copy(out, r.log)
	return out
}

// Size returns the number of members.
func (r *Room) Size() int {
	return len(r.members)
}

// Empty returns true if no members are in the room.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}
