package core

import (
	"fmt"
	"testing"
)

type discardConn struct{ id string }

func (c discardConn) ID() string { return c.id }
func (c discardConn) Send([]byte) error { return nil }

func benchmarkRoomBroadcast(b *testing.B, recipients int) {
	hub := NewHub(Options{}, nil, nil)

	sender := NewSession(hub, discardConn{id: "sender"}, "bench", "sender")
	if _, err := sender.Open(); err != nil {
		b.Fatal(err)
	}
	for i := range recipients {
		s := NewSession(hub, discardConn{id: fmt.Sprintf("c%d", i)}, "bench", "client")
		if _, err := s.Open(); err != nil {
			b.Fatal(err)
		}
	}

	payload := chatPayload("payload")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := sender.Handle(payload); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRoomBroadcast_10(b *testing.B)  { benchmarkRoomBroadcast(b, 10) }
func BenchmarkRoomBroadcast_100(b *testing.B) { benchmarkRoomBroadcast(b, 100) }
func BenchmarkRoomBroadcast_500(b *testing.B) { benchmarkRoomBroadcast(b, 500) }
