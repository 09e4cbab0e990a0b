package ndtp

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bft-labs/ndtp/pkg/bits"
)

// SpiketrainPayload carries one time bin of spike counts, one per channel.
// Counts above MaxSpikeCount are saturated on Pack rather than rejected.
type SpiketrainPayload struct {
	BinSizeMs   uint8
	SpikeCounts []uint32
}

// Kind implements Payload.
func (SpiketrainPayload) Kind() DataKind { return DataKindSpiketrain }

func (SpiketrainPayload) isPayload() {}

// Pack encodes the payload: a 4-byte count, the bin size, then the clamped
// counts at SpikeBitWidth bits each.
func (p SpiketrainPayload) Pack() ([]byte, error) {
	if uint64(len(p.SpikeCounts)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d spike counts exceed 32-bit count", ErrRange, len(p.SpikeCounts))
	}

	clamped := make([]int64, len(p.SpikeCounts))
	for i, c := range p.SpikeCounts {
		clamped[i] = int64(min(c, MaxSpikeCount))
	}

	buf := make([]byte, spiketrainPrefixSize, spiketrainPrefixSize+(len(clamped)*SpikeBitWidth+7)/8)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(clamped)))
	buf[4] = p.BinSizeMs

	packed, _, err := bits.Pack(clamped, SpikeBitWidth, nil, 0, false)
	if err != nil {
		return nil, fmt.Errorf("spike counts: %w", err)
	}
	return append(buf, packed...), nil
}

// UnpackSpiketrain decodes a spiketrain payload. The data must hold every
// advertised count.
func UnpackSpiketrain(data []byte) (SpiketrainPayload, error) {
	if len(data) < spiketrainPrefixSize {
		return SpiketrainPayload{}, fmt.Errorf("%w: spiketrain payload needs %d bytes, got %d", ErrFormat, spiketrainPrefixSize, len(data))
	}

	count := uint64(binary.BigEndian.Uint32(data[0:4]))
	p := SpiketrainPayload{BinSizeMs: data[4]}

	rest := data[spiketrainPrefixSize:]
	needed := (count*SpikeBitWidth + 7) / 8
	if uint64(len(rest)) < needed {
		return SpiketrainPayload{}, fmt.Errorf("%w: %d spike counts need %d bytes, got %d", ErrFormat, count, needed, len(rest))
	}

	p.SpikeCounts = make([]uint32, count)
	if count == 0 {
		return p, nil
	}
	values, _, _, err := bits.Unpack(rest[:needed], SpikeBitWidth, int(count), 0, false)
	if err != nil {
		return SpiketrainPayload{}, fmt.Errorf("%w: spike counts: %w", ErrFormat, err)
	}
	for i, v := range values {
		p.SpikeCounts[i] = uint32(v)
	}
	return p, nil
}

// Equal reports whether two payloads encode identically, comparing counts
// after saturation.
func (p SpiketrainPayload) Equal(other SpiketrainPayload) bool {
	if p.BinSizeMs != other.BinSizeMs || len(p.SpikeCounts) != len(other.SpikeCounts) {
		return false
	}
	for i := range p.SpikeCounts {
		if min(p.SpikeCounts[i], MaxSpikeCount) != min(other.SpikeCounts[i], MaxSpikeCount) {
			return false
		}
	}
	return true
}
