package core

import "encoding/json"

// EventKind is a notification the core broadcasts to a room.
type EventKind int

const (
	// EventPlayerJoined announces a member joining a room.
	EventPlayerJoined EventKind = iota
	// EventPlayerLeft announces a member leaving a room.
	EventPlayerLeft
	// EventChat relays a chat line.
	EventChat
	// EventMove relays a game move without interpreting it.
	EventMove
)

func (k EventKind) String() string {
	switch k {
	case EventPlayerJoined:
		return "player_joined"
	case EventPlayerLeft:
		return "player_left"
	case EventChat:
		return "chat"
	case EventMove:
		return "move"
	default:
		return "unknown"
	}
}

// Event describes something that happened in a room.
type Event struct {
	Kind EventKind
	Name string
	Slot Slot
	Text string
	Move json.RawMessage
}
