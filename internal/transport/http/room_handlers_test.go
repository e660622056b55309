package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ludo-relay/internal/config"
)

func postRoom(t *testing.T, ts *testServer, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/rooms", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	ts.Config.Handler.ServeHTTP(resp, req)
	return resp
}

func TestCreateRoomWithJoinLink(t *testing.T) {
	ts := startTestServer(t, func(cfg *config.Config) { cfg.WebAppURL = "https://example.org/ludo" })

	resp := postRoom(t, ts, `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var room CreateRoomResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &room))
	assert.Len(t, room.RoomID, 8)

	link, err := url.Parse(room.JoinURL)
	require.NoError(t, err)
	assert.Equal(t, "example.org", link.Host)
	assert.Equal(t, room.RoomID, link.Query().Get("room_id"))
	assert.Equal(t, "Alice", link.Query().Get("name"))
}

func TestCreateRoomWithoutBody(t *testing.T) {
	ts := startTestServer(t, nil)

	first := postRoom(t, ts, "")
	second := postRoom(t, ts, "")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	require.Equal(t, http.StatusCreated, second.Code)

	var a, b CreateRoomResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.NotEqual(t, a.RoomID, b.RoomID)
	assert.Empty(t, a.JoinURL, "no webapp url configured")
}

func TestCreateRoomRejectsBadBody(t *testing.T) {
	ts := startTestServer(t, nil)

	resp := postRoom(t, ts, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = postRoom(t, ts, `{"name":"`+strings.Repeat("n", 80)+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateRoomCORSPreflight(t *testing.T) {
	ts := startTestServer(t, func(cfg *config.Config) {
		cfg.AllowedOrigins = []string{"https://game.example.org"}
	})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/rooms", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		resp := httptest.NewRecorder()
		ts.Config.Handler.ServeHTTP(resp, req)
		return resp
	}

	allowed := preflight("https://game.example.org")
	assert.Equal(t, "https://game.example.org", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := preflight("https://evil.example.com")
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}
