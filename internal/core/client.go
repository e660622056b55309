package core

// Conn is a live client stream as seen by the core layer.
// Send must not block for long; transports queue the payload and
// report ErrSlowConsumer or ErrConnClosed when they cannot.
type Conn interface {
	ID() string
	Send(payload []byte) error
}
