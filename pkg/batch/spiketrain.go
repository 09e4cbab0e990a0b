package batch

import (
	"fmt"

	"github.com/bft-labs/ndtp/pkg/ndtp"
)

// BinnedSpiketrain holds one time bin of spike counts, one per channel.
type BinnedSpiketrain struct {
	// T0 is the bin start time in microseconds.
	T0        uint64
	BinSizeMs uint8

	// SpikeCounts saturate at ndtp.MaxSpikeCount on the wire.
	SpikeCounts []uint32
}

// Kind implements Data.
func (BinnedSpiketrain) Kind() ndtp.DataKind { return ndtp.DataKindSpiketrain }

func (BinnedSpiketrain) isData() {}

// Messages returns the single message carrying the bin.
func (s BinnedSpiketrain) Messages(seq uint16) ([]ndtp.Message, error) {
	return []ndtp.Message{ndtp.NewMessage(s.T0, seq, ndtp.SpiketrainPayload{
		BinSizeMs:   s.BinSizeMs,
		SpikeCounts: s.SpikeCounts,
	})}, nil
}

// Pack encodes the bin into one wire message.
func (s BinnedSpiketrain) Pack(seq uint16) ([]byte, error) {
	msgs, _ := s.Messages(seq)
	return msgs[0].Pack()
}

// UnpackBinnedSpiketrain recovers a bin from a spiketrain message.
func UnpackBinnedSpiketrain(msg ndtp.Message) (BinnedSpiketrain, error) {
	p, ok := msg.Payload.(ndtp.SpiketrainPayload)
	if !ok || msg.Header.DataKind != ndtp.DataKindSpiketrain {
		return BinnedSpiketrain{}, fmt.Errorf("%w: message kind %s is not spiketrain", ndtp.ErrFormat, msg.Header.DataKind)
	}
	return BinnedSpiketrain{
		T0:          msg.Header.Timestamp,
		BinSizeMs:   p.BinSizeMs,
		SpikeCounts: p.SpikeCounts,
	}, nil
}
