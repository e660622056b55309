package core

// ConnInfo is what the Connection Table knows about a live connection.
type ConnInfo struct {
	Conn   Conn
	RoomID string
	Name   string
	Slot   Slot
}

// ConnTable maps connection ids to their room and identity.
// Like Registry, it relies on the Hub for synchronization.
type ConnTable struct {
	entries map[string]ConnInfo
	byRoom  map[string]map[string]Conn
}

// NewConnTable creates an empty table.
func NewConnTable() *ConnTable {
	return &ConnTable{
		entries: make(map[string]ConnInfo),
		byRoom:  make(map[string]map[string]Conn),
	}
}

// Register records a connection as a member of roomID.
func (t *ConnTable) Register(conn Conn, roomID, name string, slot Slot) {
	id := conn.ID()
	t.entries[id] = ConnInfo{Conn: conn, RoomID: roomID, Name: name, Slot: slot}
	set, ok := t.byRoom[roomID]
	if !ok {
		set = make(map[string]Conn)
		t.byRoom[roomID] = set
	}
	set[id] = conn
}

// Unregister removes the entry for connID. Absent ids are not an error.
func (t *ConnTable) Unregister(connID string) (ConnInfo, bool) {
	info, ok := t.entries[connID]
	if !ok {
		return ConnInfo{}, false
	}
	delete(t.entries, connID)
	if set := t.byRoom[info.RoomID]; set != nil {
		delete(set, connID)
		if len(set) == 0 {
			delete(t.byRoom, info.RoomID)
		}
	}
	return info, true
}

// Lookup returns the entry for connID.
func (t *ConnTable) Lookup(connID string) (ConnInfo, bool) {
	info, ok := t.entries[connID]
	return info, ok
}

// MembersOf returns a snapshot of the connections in roomID.
func (t *ConnTable) MembersOf(roomID string) []Conn {
	set := t.byRoom[roomID]
	out := make([]Conn, 0, len(set))
	for _, c := range set {
		out = append(out, c)
	}
	return out
}

// Len returns the number of registered connections.
func (t *ConnTable) Len() int {
	return len(t.entries)
}
