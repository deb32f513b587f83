package ipc

import "errors"

var (
	ErrDisabled         = errors.New("ipc bridge is disabled in release builds")
	ErrMalformedFrame   = errors.New("malformed ipc frame")
	ErrMalformedRequest = errors.New("malformed ipc request")
	ErrMalformedReply   = errors.New("malformed ipc reply")
)

// Error is a bridge failure on the client side: the server could not be
// reached or the request could not be delivered.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "ipc: " + e.Message
}
