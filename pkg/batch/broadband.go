package batch

import (
	"fmt"

	"github.com/bft-labs/ndtp/pkg/bits"
	"github.com/bft-labs/ndtp/pkg/ndtp"
)

// ElectricalBroadband is a batch of waveform samples sharing one encoding and
// start timestamp. Channel sample sequences may be arbitrarily long.
type ElectricalBroadband struct {
	BitWidth   uint8
	IsSigned   bool
	SampleRate uint32

	// T0 is the batch start time in microseconds.
	T0 uint64

	Channels []ndtp.ChannelData
}

// Kind implements Data.
func (ElectricalBroadband) Kind() ndtp.DataKind { return ndtp.DataKindBroadband }

func (ElectricalBroadband) isData() {}

// ChunkSamples returns how many samples of the given width fit one message's
// sample budget. It returns 0 for an invalid width.
func ChunkSamples(bitWidth uint8) int {
	if bitWidth == 0 || bitWidth > ndtp.MaxBitWidth {
		return 0
	}
	return min(ndtp.MaxPayloadBytes*8/int(bitWidth), ndtp.MaxChannelSamples)
}

// Messages splits every channel into chunks of at most ChunkSamples samples
// and returns one single-channel message per chunk. Channels without samples
// produce no messages.
func (b ElectricalBroadband) Messages(seq uint16) ([]ndtp.Message, error) {
	size := ChunkSamples(b.BitWidth)
	if size == 0 {
		return nil, fmt.Errorf("broadband batch bit width %d: %w", b.BitWidth, bits.ErrBitWidth)
	}

	var msgs []ndtp.Message
	for _, ch := range b.Channels {
		for start := 0; start < len(ch.Samples); start += size {
			end := min(start+size, len(ch.Samples))
			payload := ndtp.BroadbandPayload{
				IsSigned:   b.IsSigned,
				BitWidth:   b.BitWidth,
				SampleRate: b.SampleRate,
				Channels: []ndtp.ChannelData{{
					ChannelID: ch.ChannelID,
					Samples:   ch.Samples[start:end],
				}},
			}
			msgs = append(msgs, ndtp.NewMessage(b.T0, seq, payload))
			seq++
		}
	}
	return msgs, nil
}

// Pack encodes the batch into wire messages numbered from seq.
func (b ElectricalBroadband) Pack(seq uint16) ([][]byte, error) {
	return Pack(b, seq)
}

// UnpackElectricalBroadband recovers the part of a batch carried by one
// message. The result holds only the chunks in that message.
func UnpackElectricalBroadband(msg ndtp.Message) (ElectricalBroadband, error) {
	p, ok := msg.Payload.(ndtp.BroadbandPayload)
	if !ok || msg.Header.DataKind != ndtp.DataKindBroadband {
		return ElectricalBroadband{}, fmt.Errorf("%w: message kind %s is not broadband", ndtp.ErrFormat, msg.Header.DataKind)
	}
	return ElectricalBroadband{
		BitWidth:   p.BitWidth,
		IsSigned:   p.IsSigned,
		SampleRate: p.SampleRate,
		T0:         msg.Header.Timestamp,
		Channels:   p.Channels,
	}, nil
}
