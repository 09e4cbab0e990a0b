package ndtp

import "fmt"

// Payload is the closed set of payload kinds: BroadbandPayload and
// SpiketrainPayload.
type Payload interface {
	// Kind returns the data kind the header must carry for this payload.
	Kind() DataKind

	// Pack encodes the payload bytes.
	Pack() ([]byte, error)

	isPayload()
}

var (
	_ Payload = BroadbandPayload{}
	_ Payload = SpiketrainPayload{}
)

// Message is one complete wire message.
type Message struct {
	Header  Header
	Payload Payload

	// Checksum is filled in by Unpack with the verified trailing CRC16.
	// Pack ignores it.
	Checksum uint16
}

// NewMessage builds a message whose header kind matches the payload.
func NewMessage(timestamp uint64, seq uint16, payload Payload) Message {
	return Message{
		Header:  NewHeader(payload.Kind(), timestamp, seq),
		Payload: payload,
	}
}

// Pack encodes header, payload and checksum. The header data kind must agree
// with the payload variant.
func (m Message) Pack() ([]byte, error) {
	if m.Payload == nil {
		return nil, fmt.Errorf("%w: message has no payload", ErrFormat)
	}
	if m.Header.DataKind != m.Payload.Kind() {
		return nil, fmt.Errorf("%w: header kind %d (%s) does not match %s payload",
			ErrFormat, m.Header.DataKind, m.Header.DataKind, m.Payload.Kind())
	}

	payload, err := m.Payload.Pack()
	if err != nil {
		return nil, fmt.Errorf("pack %s payload: %w", m.Payload.Kind(), err)
	}

	buf := make([]byte, 0, HeaderSize+len(payload)+ChecksumSize)
	buf = m.Header.appendTo(buf)
	buf = append(buf, payload...)
	return AppendChecksum(buf), nil
}

// Unpack verifies the checksum, decodes the header and dispatches payload
// decoding on the header data kind.
func Unpack(data []byte) (Message, error) {
	if len(data) < MinMessageSize {
		return Message{}, fmt.Errorf("%w: message needs at least %d bytes, got %d", ErrFormat, MinMessageSize, len(data))
	}

	received, ok := VerifyChecksum(data)
	if !ok {
		return Message{}, fmt.Errorf("%w: received %#04x, computed %#04x",
			ErrIntegrity, received, Checksum16(data[:len(data)-ChecksumSize]))
	}

	header, err := UnpackHeader(data)
	if err != nil {
		return Message{}, err
	}

	body := data[HeaderSize : len(data)-ChecksumSize]
	var payload Payload
	switch header.DataKind {
	case DataKindBroadband:
		payload, err = UnpackBroadband(body)
	case DataKindSpiketrain:
		payload, err = UnpackSpiketrain(body)
	default:
		return Message{}, fmt.Errorf("%w: %d", ErrUnsupportedKind, header.DataKind)
	}
	if err != nil {
		return Message{}, fmt.Errorf("unpack %s payload: %w", header.DataKind, err)
	}

	return Message{Header: header, Payload: payload, Checksum: received}, nil
}
