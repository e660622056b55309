package http

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ludo-relay/internal/config"
	"github.com/vovakirdan/ludo-relay/internal/core"
	"github.com/vovakirdan/ludo-relay/internal/metrics"
	"github.com/vovakirdan/ludo-relay/internal/proto"
)

type testServer struct {
	*httptest.Server
	hub     *core.Hub
	metrics *metrics.Metrics
}

func startTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.Addr = ":0"
	if mutate != nil {
		mutate(&cfg)
	}

	disabledLogger := zerolog.Nop()
	m := metrics.New()
	hub := core.NewHub(core.Options{
		ChatLogLimit:   cfg.ChatLogLimit,
		MaxRoomMembers: cfg.MaxRoomMembers,
		EvictByName:    cfg.EvictByName,
	}, &disabledLogger, m)

	server := NewServer(hub, &cfg, &disabledLogger, m)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testServer{Server: ts, hub: hub, metrics: m}
}

func (ts *testServer) wsURL(room, name string) string {
	return strings.Replace(ts.URL, "http", "ws", 1) + "/ws/" + url.PathEscape(room) + "/" + url.PathEscape(name)
}

func dial(ctx context.Context, t *testing.T, target string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, target, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func readOutbound(ctx context.Context, t *testing.T, conn *websocket.Conn) proto.Outbound {
	t.Helper()
	var out proto.Outbound
	require.NoError(t, wsjson.Read(ctx, conn, &out))
	return out
}

func sendJSON(ctx context.Context, t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, wsjson.Write(ctx, conn, v))
}

func chat(text string) proto.Inbound {
	return proto.Inbound{Type: proto.InboundTypeChat, Text: &text}
}
