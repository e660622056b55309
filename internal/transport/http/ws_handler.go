package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ludo-relay/internal/config"
	"github.com/vovakirdan/ludo-relay/internal/core"
	"github.com/vovakirdan/ludo-relay/internal/utils"
)

// wsConn is the core.Conn for one WebSocket. Sends are queued and
// drained by a single writer so each client sees events in order.
type wsConn struct {
	id   string
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func newWSConn(id string, buffer int) *wsConn {
	return &wsConn{
		id:   id,
		out:  make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) Send(payload []byte) error {
	select {
	case <-c.done:
		return core.ErrConnClosed
	default:
	}
	select {
	case c.out <- payload:
		return nil
	default:
		return core.ErrSlowConsumer
	}
}

func (c *wsConn) close() {
	c.once.Do(func() { close(c.done) })
}

// WSHandler upgrades HTTP connections and runs a core.Session for each.
type WSHandler struct {
	hub *core.Hub
	cfg *config.Config
	log *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, cfg: cfg, log: logger}
}

// ServeHTTP serves GET /ws/{room}/{name} and GET /ws?room_id=&name=.
// It is mounted beside the gin router, not inside it, so the connection can be hijacked.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roomID := firstNonEmpty(r.PathValue("room"), r.URL.Query().Get("room_id"))
	name := firstNonEmpty(r.PathValue("name"), r.URL.Query().Get("name"))
	if roomID == "" || name == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "room and name are required"})
		return
	}

	conn, err := websocket.Accept(w, r, h.acceptOptions())
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")
	conn.SetReadLimit(h.cfg.MaxMessageBytes)

	client := newWSConn(utils.NewID(), h.cfg.SendBuffer)
	defer client.close()

	session := core.NewSession(h.hub, client, roomID, name)
	if _, err := session.Open(); err != nil {
		h.log.Info().Err(err).Str("room_id", roomID).Str("name", name).Msg("join refused")
		reason := "join refused"
		if ce := core.AsCoreError(err); ce != nil {
			reason = ce.Message
		}
		conn.Close(websocket.StatusPolicyViolation, reason)
		return
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	limiter := newRateLimiter(h.cfg.RateLimitPerMinute)
	limiter.startReset(ctx.Done())

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client, session, limiter)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	// Leave before the close handshake, which can wait on an unresponsive peer.
	session.Close()

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("conn_id", client.ID()).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) acceptOptions() *websocket.AcceptOptions {
	if len(h.cfg.AllowedOrigins) == 0 {
		return &websocket.AcceptOptions{InsecureSkipVerify: true}
	}
	return &websocket.AcceptOptions{OriginPatterns: originHosts(h.cfg.AllowedOrigins)}
}

// originHosts turns configured origins into the host patterns websocket.Accept matches on.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, o)
	}
	return hosts
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *wsConn, session *core.Session, limiter *rateLimiter) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			h.log.Debug().Err(err).Str("conn_id", client.ID()).Msg("read ws inbound")
			return err
		}

		if !limiter.allow() {
			_ = client.Send(core.EncodeError(core.NewRateLimitedError()))
			continue
		}

		if err := session.Handle(data); err != nil {
			if core.IsRejection(err) {
				h.log.Debug().Err(err).Str("conn_id", client.ID()).Msg("rejected inbound")
				_ = client.Send(core.EncodeError(err))
				continue
			}
			return err
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *wsConn) error {
	for {
		select {
		case payload := <-client.out:
			if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
				h.log.Debug().Err(err).Str("conn_id", client.ID()).Msg("write ws event")
				return err
			}
		case <-client.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
