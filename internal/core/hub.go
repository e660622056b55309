package core

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ludo-relay/internal/metrics"
)

// roomIDLength matches the short ids handed out in join links.
const roomIDLength = 8

// Options tunes room behavior.
type Options struct {
	// ChatLogLimit bounds each room's transient chat log (0 = unbounded).
	ChatLogLimit int
	// MaxRoomMembers rejects joins past this size (0 = unlimited, colors repeat).
	MaxRoomMembers int
	// EvictByName removes every member sharing the leaver's name instead of
	// only the leaving connection's entry.
	EvictByName bool
}

// Hub owns the room registry and the connection table and fans events out to rooms.
// A single mutex guards both tables; sends happen outside of it.
type Hub struct {
	mu    sync.Mutex
	rooms *Registry
	conns *ConnTable

	opts    Options
	log     *zerolog.Logger
	metrics *metrics.Metrics
	newID   func() string
}

// NewHub creates a hub. logger and m may be nil.
func NewHub(opts Options, logger *zerolog.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		rooms:   NewRegistry(opts.ChatLogLimit),
		conns:   NewConnTable(),
		opts:    opts,
		log:     logger,
		metrics: m,
		newID:   shortRoomID,
	}
}

func shortRoomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:roomIDLength]
}

// CreateRoom mints a room id that no active room is using.
// The room itself is created by the first join.
func (h *Hub) CreateRoom() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	for {
		id := h.newID()
		if !h.rooms.Exists(id) {
			return id
		}
	}
}

// join registers conn and adds its member in one step.
func (h *Hub) join(conn Conn, roomID, name string) (Member, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	if room, ok := h.rooms.Get(roomID); ok {
		count = room.Size()
	}
	if h.opts.MaxRoomMembers > 0 && count >= h.opts.MaxRoomMembers {
		return Member{}, wrapCoreError(ErrCodeRoomFull, ErrRoomFull)
	}

	member := Member{ConnID: conn.ID(), Name: name, Slot: SlotFor(count)}
	h.conns.Register(conn, roomID, name, member.Slot)
	h.rooms.AddMember(roomID, member)
	h.metrics.SetOccupancy(h.rooms.Len(), h.conns.Len())
	return member, nil
}

// leave unregisters connID and removes its member in one step.
func (h *Hub) leave(connID string) (ConnInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	info, ok := h.conns.Unregister(connID)
	if !ok {
		return ConnInfo{}, false
	}
	if h.opts.EvictByName {
		h.rooms.RemoveMember(info.RoomID, info.Name)
	} else {
		h.rooms.RemoveConn(info.RoomID, connID)
	}
	h.metrics.SetOccupancy(h.rooms.Len(), h.conns.Len())
	return info, true
}

func (h *Hub) recordChat(roomID string, ev ChatEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rooms.RecordChat(roomID, ev)
}

// Broadcast encodes ev once and sends it to every connection in the room.
// Per-recipient failures are counted and dropped; they never reach the caller.
func (h *Hub) Broadcast(roomID string, ev *Event) {
	payload, err := Encode(ev)
	if err != nil {
		h.log.Error().Err(err).Str("room_id", roomID).Stringer("event", ev.Kind).Msg("encode event")
		return
	}

	recipients := h.MembersOf(roomID)

	failed := 0
	for _, c := range recipients {
		if err := c.Send(payload); err != nil {
			failed++
			h.log.Debug().Err(err).Str("room_id", roomID).Str("conn_id", c.ID()).Msg("drop delivery")
		}
	}
	h.metrics.ObserveBroadcast(ev.Kind.String(), len(recipients)-failed, failed)
}

// MembersOf returns a snapshot of the connections currently in the room.
func (h *Hub) MembersOf(roomID string) []Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conns.MembersOf(roomID)
}

// Members returns the room's member list in join order.
func (h *Hub) Members(roomID string) []Member {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.Members(roomID)
}

// ChatLog returns a copy of the room's transient chat log.
func (h *Hub) ChatLog(roomID string) []ChatEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms.Get(roomID)
	if !ok {
		return nil
	}
	return room.Log()
}

// Stats returns the number of active rooms and connections.
func (h *Hub) Stats() (rooms, conns int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.Len(), h.conns.Len()
}
