package core

import "time"

// Member is a player listed in a room.
type Member struct {
	ConnID string
	Name   string
	Slot   Slot
}

// ChatEvent is the domain model for a chat line kept in a room's log.
type ChatEvent struct {
	Name      string
	Slot      Slot
	Text      string
	CreatedAt time.Time
}
