package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/ludo-relay/internal/proto"
)

// SessionState tracks where a connection is in its lifecycle.
type SessionState int

const (
	StateConnecting SessionState = iota
	StateActive
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session manages one client's stream from join to disconnect.
type Session struct {
	hub    *Hub
	conn   Conn
	roomID string
	name   string

	mu     sync.Mutex
	state  SessionState
	member Member
}

// NewSession creates a session in the connecting state.
func NewSession(hub *Hub, conn Conn, roomID, name string) *Session {
	return &Session{
		hub:    hub,
		conn:   conn,
		roomID: roomID,
		name:   name,
		state:  StateConnecting,
	}
}

// Open joins the room and announces the new member to everyone in it, the joiner included.
func (s *Session) Open() (Member, error) {
	s.mu.Lock()
	if s.state != StateConnecting {
		s.mu.Unlock()
		return Member{}, wrapCoreError(ErrCodeNotActive, ErrNotActive)
	}
	member, err := s.hub.join(s.conn, s.roomID, s.name)
	if err != nil {
		s.state = StateClosed
		s.mu.Unlock()
		return Member{}, fmt.Errorf("join room %s: %w", s.roomID, err)
	}
	s.state = StateActive
	s.member = member
	s.mu.Unlock()

	s.hub.log.Info().
		Str("conn_id", s.conn.ID()).
		Str("room_id", s.roomID).
		Str("name", s.name).
		Stringer("color", member.Slot).
		Msg("player joined")

	s.hub.Broadcast(s.roomID, &Event{Kind: EventPlayerJoined, Name: s.name, Slot: member.Slot})
	return member, nil
}

// Handle decodes one inbound payload and relays it to the room.
// A returned *CoreError describes a rejected message; the session stays open.
func (s *Session) Handle(payload []byte) error {
	s.mu.Lock()
	state, member := s.state, s.member
	s.mu.Unlock()
	if state != StateActive {
		return wrapCoreError(ErrCodeNotActive, ErrNotActive)
	}

	err := s.handle(member, payload)
	if ce := AsCoreError(err); ce != nil {
		s.hub.metrics.ObserveRejected(ce.Code)
	}
	return err
}

func (s *Session) handle(member Member, payload []byte) error {
	var in proto.Inbound
	if err := json.Unmarshal(payload, &in); err != nil {
		return wrapCoreError(ErrCodeBadRequest, fmt.Errorf("decode message: %w", err))
	}

	switch in.Type {
	case proto.InboundTypeChat:
		if in.Text == nil {
			return coreError(ErrCodeBadRequest, "text is required")
		}
		s.hub.metrics.ObserveInbound(in.Type)
		s.hub.recordChat(s.roomID, ChatEvent{
			Name:      member.Name,
			Slot:      member.Slot,
			Text:      *in.Text,
			CreatedAt: time.Now(),
		})
		s.hub.Broadcast(s.roomID, &Event{Kind: EventChat, Name: member.Name, Slot: member.Slot, Text: *in.Text})
		return nil
	case proto.InboundTypeMove:
		if len(in.Move) == 0 || string(in.Move) == "null" {
			return coreError(ErrCodeBadRequest, "move is required")
		}
		s.hub.metrics.ObserveInbound(in.Type)
		s.hub.Broadcast(s.roomID, &Event{Kind: EventMove, Name: member.Name, Move: in.Move})
		return nil
	case "":
		return coreError(ErrCodeBadRequest, "type is required")
	default:
		return coreError(ErrCodeUnknownType, fmt.Sprintf("unknown message type %q", in.Type))
	}
}

// Close leaves the room and announces the departure. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	wasActive := s.state == StateActive
	s.state = StateClosed
	s.mu.Unlock()
	if !wasActive {
		return
	}

	info, ok := s.hub.leave(s.conn.ID())
	if !ok {
		return
	}

	s.hub.log.Info().
		Str("conn_id", s.conn.ID()).
		Str("room_id", info.RoomID).
		Str("name", info.Name).
		Msg("player left")

	s.hub.Broadcast(info.RoomID, &Event{Kind: EventPlayerLeft, Name: info.Name})
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Member returns the member this session joined as. Zero until Open succeeds.
func (s *Session) Member() Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.member
}

// IsRejection reports whether err is a per-message rejection that leaves the session open.
func IsRejection(err error) bool {
	ce := AsCoreError(err)
	return ce != nil && !errors.Is(ce, ErrNotActive)
}
