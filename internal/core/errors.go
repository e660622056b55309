package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeUnknownType = "unknown_type"
	ErrCodeRoomFull    = "room_full"
	ErrCodeNotActive   = "not_active"
	ErrCodeRateLimited = "rate_limited"
	ErrCodeInternal    = "internal"
)

var (
	ErrRoomFull     = errors.New("room is full")
	ErrNotActive    = errors.New("session is not active")
	ErrSlowConsumer = errors.New("outbound queue full")
	ErrConnClosed   = errors.New("connection closed")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
	Err     error
}

func (e *CoreError) Error() string {
	return e.Message
}

func (e *CoreError) Unwrap() error {
	return e.Err
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

func wrapCoreError(code string, err error) *CoreError {
	return &CoreError{Code: code, Message: err.Error(), Err: err}
}

// NewRateLimitedError reports a message dropped by the per-connection limiter.
func NewRateLimitedError() *CoreError {
	return coreError(ErrCodeRateLimited, "too many messages")
}

// AsCoreError extracts a *CoreError from err, or returns nil.
func AsCoreError(err error) *CoreError {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
