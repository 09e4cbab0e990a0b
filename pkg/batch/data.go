package batch

import (
	"fmt"

	"github.com/bft-labs/ndtp/pkg/ndtp"
)

// Data is the closed set of batch kinds: ElectricalBroadband and
// BinnedSpiketrain.
type Data interface {
	// Kind returns the data kind carried by every message of the batch.
	Kind() ndtp.DataKind

	// Messages builds the wire messages for the batch, numbered from seq.
	Messages(seq uint16) ([]ndtp.Message, error)

	isData()
}

var (
	_ Data = ElectricalBroadband{}
	_ Data = BinnedSpiketrain{}
)

// Pack encodes every message of d, numbered from seq. The next free sequence
// number is seq + len(result), modulo 65536.
func Pack(d Data, seq uint16) ([][]byte, error) {
	msgs, err := d.Messages(seq)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(msgs))
	for _, m := range msgs {
		b, err := m.Pack()
		if err != nil {
			return nil, fmt.Errorf("pack message seq %d: %w", m.Header.SeqNumber, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// FromMessage converts one decoded message into its batch variant, selected
// by the header data kind.
func FromMessage(msg ndtp.Message) (Data, error) {
	switch msg.Header.DataKind {
	case ndtp.DataKindBroadband:
		return UnpackElectricalBroadband(msg)
	case ndtp.DataKindSpiketrain:
		return UnpackBinnedSpiketrain(msg)
	default:
		return nil, fmt.Errorf("%w: %d", ndtp.ErrUnsupportedKind, msg.Header.DataKind)
	}
}

// Decode unpacks one wire message and converts it with FromMessage.
func Decode(data []byte) (Data, error) {
	msg, err := ndtp.Unpack(data)
	if err != nil {
		return nil, err
	}
	return FromMessage(msg)
}
