package ipc

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

const codecName = "ipc-raw"

const (
	frameEmpty byte = 0
	frameData  byte = 1
)

// frame is the message exchanged over the bridge. A frame without data is
// distinct from one carrying an empty payload.
type frame struct {
	present bool
	data    []byte
}

func dataFrame(data []byte) *frame {
	return &frame{present: true, data: data}
}

// rawCodec writes a frame as one marker byte followed by the payload.
type rawCodec struct{}

var _ encoding.Codec = rawCodec{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	f, ok := v.(*frame)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected message type %T", ErrMalformedFrame, v)
	}
	if !f.present {
		return []byte{frameEmpty}, nil
	}

	out := make([]byte, 0, len(f.data)+1)
	out = append(out, frameData)
	return append(out, f.data...), nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	f, ok := v.(*frame)
	if !ok {
		return fmt.Errorf("%w: unexpected message type %T", ErrMalformedFrame, v)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty message", ErrMalformedFrame)
	}

	switch data[0] {
	case frameEmpty:
		f.present, f.data = false, nil
	case frameData:
		f.present = true
		f.data = append([]byte{}, data[1:]...)
	default:
		return fmt.Errorf("%w: unknown marker %d", ErrMalformedFrame, data[0])
	}
	return nil
}

func (rawCodec) Name() string {
	return codecName
}
