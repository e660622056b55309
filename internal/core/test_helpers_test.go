package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ludo-relay/internal/proto"
)

var connSeq atomic.Int64

// fakeConn records every payload sent to it.
type fakeConn struct {
	id string

	mu     sync.Mutex
	frames [][]byte
	fail   bool
}

func newFakeConn(id string) *fakeConn {
	if id == "" {
		id = fmt.Sprintf("conn-%d", connSeq.Add(1))
	}
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.frames = append(c.frames, payload)
	return nil
}

func (c *fakeConn) breakPipe() {
	c.mu.Lock()
	c.fail = true
	c.mu.Unlock()
}

func (c *fakeConn) raw() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.frames))
	copy(out, c.frames)
	return out
}

func (c *fakeConn) outbound(t *testing.T) []proto.Outbound {
	t.Helper()
	var out []proto.Outbound
	for _, f := range c.raw() {
		var o proto.Outbound
		require.NoError(t, json.Unmarshal(f, &o))
		out = append(out, o)
	}
	return out
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	c.frames = nil
	c.mu.Unlock()
}

// openSession joins conn to roomID as name and fails the test on error.
func openSession(t *testing.T, hub *Hub, conn Conn, roomID, name string) *Session {
	t.Helper()
	s := NewSession(hub, conn, roomID, name)
	_, err := s.Open()
	require.NoError(t, err)
	return s
}

func chatPayload(text string) []byte {
	data, _ := json.Marshal(map[string]string{"type": "chat", "text": text})
	return data
}

func memberNames(members []Member) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}
