package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/ludo-relay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket base address")
	name := flag.String("name", "tester", "player name")
	room := flag.String("room", "smoke", "room id")
	text := flag.String("text", "hello from smoke test", "chat text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	target := fmt.Sprintf("%s/%s/%s", strings.TrimRight(*addr, "/"), url.PathEscape(*room), url.PathEscape(*name))
	conn, _, err := websocket.Dial(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeChat, Text: text}); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	for {
		var out proto.Outbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("Received: type=%s\n", out.Type)

		switch out.Type {
		case proto.OutboundTypePlayerJoined:
			fmt.Printf("Join: name=%s color=%s\n", out.Name, out.Color)
		case proto.OutboundTypeChat:
			fmt.Printf("Chat: name=%s color=%s text=%q\n", out.Name, out.Color, out.Text)
			if out.Name == *name && out.Text == *text {
				return nil
			}
		case proto.OutboundTypeError:
			if out.Error != nil {
				return fmt.Errorf("server rejected message: %s: %s", out.Error.Code, out.Error.Msg)
			}
		}
	}
}
