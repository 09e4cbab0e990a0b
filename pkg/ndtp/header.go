package ndtp

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed framing block at the start of every message.
type Header struct {
	// Version is always the package Version on decode; Pack writes Version
	// regardless of the field value.
	Version uint8

	// DataKind selects the payload decoder.
	DataKind DataKind

	// Timestamp is in microseconds.
	Timestamp uint64

	// SeqNumber wraps modulo 65536.
	SeqNumber uint16
}

// NewHeader returns a header for the current protocol version.
func NewHeader(kind DataKind, timestamp uint64, seq uint16) Header {
	return Header{
		Version:   Version,
		DataKind:  kind,
		Timestamp: timestamp,
		SeqNumber: seq,
	}
}

// Pack encodes the header into HeaderSize bytes.
func (h Header) Pack() []byte {
	return h.appendTo(make([]byte, 0, HeaderSize))
}

func (h Header) appendTo(buf []byte) []byte {
	buf = append(buf, Version, byte(h.DataKind))
	buf = binary.BigEndian.AppendUint64(buf, h.Timestamp)
	return binary.BigEndian.AppendUint16(buf, h.SeqNumber)
}

// UnpackHeader decodes a header from the first HeaderSize bytes of data.
func UnpackHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrFormat, HeaderSize, len(data))
	}
	if data[0] != Version {
		return Header{}, fmt.Errorf("%w: got %d, want %d", ErrVersion, data[0], Version)
	}
	return Header{
		Version:   data[0],
		DataKind:  DataKind(data[1]),
		Timestamp: binary.BigEndian.Uint64(data[2:10]),
		SeqNumber: binary.BigEndian.Uint16(data[10:12]),
	}, nil
}

// Equal compares the fields that travel on the wire.
func (h Header) Equal(other Header) bool {
	return h.DataKind == other.DataKind &&
		h.Timestamp == other.Timestamp &&
		h.SeqNumber == other.SeqNumber
}
