package core

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/ludo-relay/internal/proto"
)

// Encode renders an event in its wire form.
func Encode(ev *Event) ([]byte, error) {
	frame, err := outboundFromEvent(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(frame)
}

func outboundFromEvent(ev *Event) (any, error) {
	switch ev.Kind {
	case EventPlayerJoined:
		return proto.PlayerJoined{
			Type:  proto.OutboundTypePlayerJoined,
			Name:  ev.Name,
			Color: ev.Slot.String(),
		}, nil
	case EventPlayerLeft:
		return proto.PlayerLeft{
			Type: proto.OutboundTypePlayerLeft,
			Name: ev.Name,
		}, nil
	case EventChat:
		return proto.Chat{
			Type:  proto.OutboundTypeChat,
			Name:  ev.Name,
			Color: ev.Slot.String(),
			Text:  ev.Text,
		}, nil
	case EventMove:
		return proto.Move{
			Type: proto.OutboundTypeMove,
			From: ev.Name,
			Move: ev.Move,
		}, nil
	default:
		return nil, fmt.Errorf("unknown event kind %d", ev.Kind)
	}
}

// EncodeError renders a private error frame for a rejected inbound message.
func EncodeError(err error) []byte {
	frame := proto.ErrorFrame{
		Type:  proto.OutboundTypeError,
		Error: &proto.Error{Code: ErrCodeInternal, Msg: "internal error"},
	}
	if ce := AsCoreError(err); ce != nil {
		frame.Error = &proto.Error{Code: ce.Code, Msg: ce.Message}
	}
	data, _ := json.Marshal(frame)
	return data
}
