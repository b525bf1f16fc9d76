package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LengthPrefixCodec implements the legacy framing profile: a 4-byte
// little-endian length prefix followed by the JSON body, with no
// magic, version or type fields. Frames on this profile are always
// JSON requests/responses; heartbeats do not exist here.
type LengthPrefixCodec struct{}

func NewLengthPrefixCodec() *LengthPrefixCodec {
	return &LengthPrefixCodec{}
}

func (c *LengthPrefixCodec) ReadFrame(r io.Reader) (MessageType, []byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, nil, err
	}

	length := binary.LittleEndian.Uint32(prefix[:])
	if length > MaxFrameSize {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}
	if length == 0 {
		return TypeJSONRequest, nil, nil
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}

	return TypeJSONRequest, payload, nil
}

func (c *LengthPrefixCodec) WriteFrame(w io.Writer, _ MessageType, payload []byte) error {
	if uint32(len(payload)) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}

	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame[0:4], uint32(len(payload)))
	copy(frame[4:], payload)

	_, err := w.Write(frame)
	return err
}
