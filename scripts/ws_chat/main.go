package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/ludo-relay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket base address")
	name := flag.String("name", "cli-player", "player name")
	room := flag.String("room", "lobby", "room to join")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	target := fmt.Sprintf("%s/%s/%s", strings.TrimRight(*addr, "/"), url.PathEscape(*room), url.PathEscape(*name))
	conn, _, err := websocket.Dial(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *name, *room)
	fmt.Println("Type to chat, /move <json> to send a move. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var out proto.Outbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch out.Type {
		case proto.OutboundTypeChat:
			fmt.Printf("[%s] %s: %s\n", out.Color, out.Name, out.Text)
		case proto.OutboundTypeMove:
			fmt.Printf("%s moved %s\n", out.From, string(out.Move))
		case proto.OutboundTypePlayerJoined:
			fmt.Printf("%s joined as %s\n", out.Name, out.Color)
		case proto.OutboundTypePlayerLeft:
			fmt.Printf("%s left\n", out.Name)
		case proto.OutboundTypeError:
			if out.Error != nil {
				fmt.Printf("error %s: %s\n", out.Error.Code, out.Error.Msg)
			}
		default:
			fmt.Printf("unknown frame type=%s\n", out.Type)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			msg, err := parseLine(text)
			if err != nil {
				log.Printf("%v", err)
				continue
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}

func parseLine(text string) (proto.Inbound, error) {
	if rest, ok := strings.CutPrefix(text, "/move "); ok {
		raw := json.RawMessage(strings.TrimSpace(rest))
		if !json.Valid(raw) {
			return proto.Inbound{}, fmt.Errorf("move must be valid JSON: %s", rest)
		}
		return proto.Inbound{Type: proto.InboundTypeMove, Move: raw}, nil
	}
	return proto.Inbound{Type: proto.InboundTypeChat, Text: &text}, nil
}
