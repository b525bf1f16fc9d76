package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Wire framing of the canonical profile (big-endian):
//
//	magic(4) | version(1) | type(2) | payloadSize(4) | payload
//
// The payload is a compact UTF-8 JSON document. Requests and responses
// share the same layout.
const (
	Magic      uint32 = 0x1A2B3C4D
	Version    uint8  = 1
	HeaderSize        = 11

	// MaxFrameSize caps the payload a peer can make the server buffer.
	MaxFrameSize uint32 = 4 * 1024 * 1024
)

// MessageType identifies a frame's payload kind
type MessageType uint16

const (
	TypeJSONRequest   MessageType = 1
	TypeJSONResponse  MessageType = 2
	TypeErrorResponse MessageType = 3
	TypeHeartbeatPing MessageType = 4
	TypeHeartbeatPong MessageType = 5
)

// Framing violations are fatal to the connection: once the stream is
// misaligned nothing after the bad header can be trusted.
var (
	ErrBadMagic           = errors.New("bad magic constant")
	ErrUnsupportedVersion = errors.New("unsupported protocol version")
	ErrFrameTooLarge      = errors.New("frame exceeds maximum payload size")
)

// IsFatal reports whether err is a framing violation that must
// terminate the connection, as opposed to a request-scoped failure.
func IsFatal(err error) bool {
	return errors.Is(err, ErrBadMagic) ||
		errors.Is(err, ErrUnsupportedVersion) ||
		errors.Is(err, ErrFrameTooLarge)
}

// Codec reads and writes one complete frame. Implementations are
// stateless and safe for use from one goroutine per connection.
type Codec interface {
	ReadFrame(r io.Reader) (MessageType, []byte, error)
	WriteFrame(w io.Writer, msgType MessageType, payload []byte) error
}

// HeaderCodec implements the canonical magic/version/type framing.
type HeaderCodec struct{}

func NewHeaderCodec() *HeaderCodec {
	return &HeaderCodec{}
}

func (c *HeaderCodec) ReadFrame(r io.Reader) (MessageType, []byte, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, err
	}

	magic := binary.BigEndian.Uint32(header[0:4])
	if magic != Magic {
		return 0, nil, fmt.Errorf("%w: got 0x%08X", ErrBadMagic, magic)
	}

	version := header[4]
	if version != Version {
		return 0, nil, fmt.Errorf("%w: got %d", ErrUnsupportedVersion, version)
	}

	msgType := MessageType(binary.BigEndian.Uint16(header[5:7]))
	payloadSize := binary.BigEndian.Uint32(header[7:11])
	if payloadSize > MaxFrameSize {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, payloadSize)
	}

	if payloadSize == 0 {
		return msgType, nil, nil
	}

	// The full payload must be buffered before any JSON decode runs.
	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}

	return msgType, payload, nil
}

func (c *HeaderCodec) WriteFrame(w io.Writer, msgType MessageType, payload []byte) error {
	if uint32(len(payload)) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}

	frame := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint32(frame[0:4], Magic)
	frame[4] = Version
	binary.BigEndian.PutUint16(frame[5:7], uint16(msgType))
	binary.BigEndian.PutUint32(frame[7:11], uint32(len(payload)))
	copy(frame[HeaderSize:], payload)

	_, err := w.Write(frame)
	return err
}
