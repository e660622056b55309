package core

// Registry maps room ids to rooms. It is not safe for concurrent use;
// the Hub serializes access to it.
type Registry struct {
	rooms        map[string]*Room
	chatLogLimit int
}

// NewRegistry creates an empty registry. chatLogLimit bounds each room's log (0 = unbounded).
func NewRegistry(chatLogLimit int) *Registry {
	return &Registry{
		rooms:        make(map[string]*Room),
		chatLogLimit: chatLogLimit,
	}
}

// GetOrCreate returns the room with the given id, creating an empty one if needed.
func (r *Registry) GetOrCreate(roomID string) *Room {
	room, ok := r.rooms[roomID]
	if !ok {
		room = NewRoom(roomID)
		r.rooms[roomID] = room
	}
	return room
}

// Get returns the room if it exists.
func (r *Registry) Get(roomID string) (*Room, bool) {
	room, ok := r.rooms[roomID]
	return room, ok
}

// Exists reports whether a room with the given id is active.
func (r *Registry) Exists(roomID string) bool {
	_, ok := r.rooms[roomID]
	return ok
}

// AddMember appends a member to the room, creating the room first if absent.
func (r *Registry) AddMember(roomID string, m Member) {
	r.GetOrCreate(roomID).AddMember(m)
}

// RemoveMember removes every member whose name matches exactly.
// Empty rooms are dropped.
func (r *Registry) RemoveMember(roomID, name string) int {
	room, ok := r.rooms[roomID]
	if !ok {
		return 0
	}
	n := room.RemoveByName(name)
	r.dropIfEmpty(room)
	return n
}

// RemoveConn removes the member owned by connID. Empty rooms are dropped.
func (r *Registry) RemoveConn(roomID, connID string) bool {
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	removed := room.RemoveByConn(connID)
	r.dropIfEmpty(room)
	return removed
}

// RecordChat appends a chat event to the room's transient log.
// Rooms that are already gone are not recreated.
func (r *Registry) RecordChat(roomID string, ev ChatEvent) bool {
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	room.Record(ev, r.chatLogLimit)
	return true
}

// Members returns the room's members in join order, or nil for an unknown room.
func (r *Registry) Members(roomID string) []Member {
	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	return room.Members()
}

// Len returns the number of active rooms.
func (r *Registry) Len() int {
	return len(r.rooms)
}

func (r *Registry) dropIfEmpty(room *Room) {
	if room.Empty() {
		delete(r.rooms, room.ID)
	}
}
