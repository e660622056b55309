package proto

import "encoding/json"

const (
	InboundTypeChat = "chat"
	InboundTypeMove = "move"

	OutboundTypePlayerJoined = "player_joined"
	OutboundTypePlayerLeft   = "player_left"
	OutboundTypeChat         = "chat"
	OutboundTypeMove         = "move"
	OutboundTypeError        = "error"
)

// Inbound is a message coming from the client.
// Text is a pointer so a missing field can be told apart from an empty one.
type Inbound struct {
	Type string          `json:"type"`
	Text *string         `json:"text,omitempty"`
	Move json.RawMessage `json:"move,omitempty"`
}

// PlayerJoined announces a new member and the color it was given.
type PlayerJoined struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PlayerLeft announces a member that disconnected.
type PlayerLeft struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Chat is a chat line relayed to the room.
type Chat struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Text  string `json:"text"`
}

// Move is a game move relayed verbatim to the room.
type Move struct {
	Type string          `json:"type"`
	From string          `json:"from"`
	Move json.RawMessage `json:"move"`
}

// ErrorFrame is sent only to the client whose message was rejected.
type ErrorFrame struct {
	Type  string `json:"type"`
	Error *Error `json:"error"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Outbound is the loose shape of any server message, used by clients and tests.
type Outbound struct {
	Type  string          `json:"type"`
	Name  string          `json:"name,omitempty"`
	Color string          `json:"color,omitempty"`
	Text  string          `json:"text,omitempty"`
	From  string          `json:"from,omitempty"`
	Move  json.RawMessage `json:"move,omitempty"`
	Error *Error          `json:"error,omitempty"`
}
