package ndtp

import (
	"fmt"

	"github.com/bft-labs/ndtp/pkg/bits"
)

// ChannelData is one channel's samples inside a broadband payload.
type ChannelData struct {
	// ChannelID is a 24-bit channel identifier.
	ChannelID uint32

	// Samples holds at most MaxChannelSamples values.
	Samples []int64
}

// BroadbandPayload carries multi-channel waveform samples. Every sample in
// the payload is packed at BitWidth bits, two's complement when IsSigned.
type BroadbandPayload struct {
	IsSigned   bool
	BitWidth   uint8
	SampleRate uint32
	Channels   []ChannelData
}

// Kind implements Payload.
func (BroadbandPayload) Kind() DataKind { return DataKindBroadband }

func (BroadbandPayload) isPayload() {}

// Pack encodes the payload. Channel fields and samples share one continuous
// bit stream; only the last byte may be partially filled.
func (p BroadbandPayload) Pack() ([]byte, error) {
	width := int(p.BitWidth)
	if width == 0 || width > MaxBitWidth {
		return nil, fmt.Errorf("broadband bit width %d: %w", width, bits.ErrBitWidth)
	}
	if !fitsUnsigned(uint64(len(p.Channels)), ChannelCountBits) {
		return nil, fmt.Errorf("%w: %d channels exceed %d-bit count", ErrRange, len(p.Channels), ChannelCountBits)
	}
	if !fitsUnsigned(uint64(p.SampleRate), SampleRateBits) {
		return nil, fmt.Errorf("%w: sample rate %d exceeds %d bits", ErrRange, p.SampleRate, SampleRateBits)
	}

	buf := make([]byte, 0, p.sizeHint())
	var signedBit byte
	if p.IsSigned {
		signedBit = 1
	}
	n := len(p.Channels)
	buf = append(buf,
		p.BitWidth<<1|signedBit,
		byte(n>>16), byte(n>>8), byte(n),
		byte(p.SampleRate>>16), byte(p.SampleRate>>8), byte(p.SampleRate),
	)

	// Completed bytes live in head; bits.Pack only ever sees the open tail.
	head := buf
	var tail []byte
	off := 0
	for i, ch := range p.Channels {
		if !fitsUnsigned(uint64(ch.ChannelID), ChannelIDBits) {
			return nil, fmt.Errorf("%w: channel %d id %d exceeds %d bits", ErrRange, i, ch.ChannelID, ChannelIDBits)
		}
		if len(ch.Samples) > MaxChannelSamples {
			return nil, fmt.Errorf("%w: channel %d has %d samples, max %d", ErrRange, ch.ChannelID, len(ch.Samples), MaxChannelSamples)
		}

		var err error
		if tail, off, err = bits.Pack([]int64{int64(ch.ChannelID)}, ChannelIDBits, tail, off, false); err != nil {
			return nil, fmt.Errorf("channel %d id: %w", ch.ChannelID, err)
		}
		if tail, off, err = bits.Pack([]int64{int64(len(ch.Samples))}, SampleCountBits, tail, off, false); err != nil {
			return nil, fmt.Errorf("channel %d sample count: %w", ch.ChannelID, err)
		}
		if tail, off, err = bits.Pack(ch.Samples, width, tail, off, p.IsSigned); err != nil {
			return nil, fmt.Errorf("channel %d samples: %w", ch.ChannelID, err)
		}

		head, tail = flushComplete(head, tail, off)
	}
	return append(head, tail...), nil
}

// flushComplete moves every fully written byte of tail onto head.
func flushComplete(head, tail []byte, off int) ([]byte, []byte) {
	keep := 0
	if off > 0 {
		keep = 1
	}
	if len(tail) <= keep {
		return head, tail
	}
	head = append(head, tail[:len(tail)-keep]...)
	return head, append([]byte(nil), tail[len(tail)-keep:]...)
}

func (p BroadbandPayload) sizeHint() int {
	total := broadbandPrefixSize * 8
	for _, ch := range p.Channels {
		total += ChannelIDBits + SampleCountBits + len(ch.Samples)*int(p.BitWidth)
	}
	return (total + 7) / 8
}

// UnpackBroadband decodes a broadband payload.
func UnpackBroadband(data []byte) (BroadbandPayload, error) {
	if len(data) < broadbandPrefixSize {
		return BroadbandPayload{}, fmt.Errorf("%w: broadband payload needs %d bytes, got %d", ErrFormat, broadbandPrefixSize, len(data))
	}

	p := BroadbandPayload{
		IsSigned:   data[0]&1 == 1,
		BitWidth:   data[0] >> 1,
		SampleRate: uint32(data[4])<<16 | uint32(data[5])<<8 | uint32(data[6]),
	}
	width := int(p.BitWidth)
	if width == 0 || width > MaxBitWidth {
		return BroadbandPayload{}, fmt.Errorf("%w: bit width %d", ErrFormat, width)
	}
	n := int(data[1])<<16 | int(data[2])<<8 | int(data[3])

	rest := data[broadbandPrefixSize:]
	off := 0
	if n > 0 {
		p.Channels = make([]ChannelData, 0, min(n, len(rest)))
	}
	for i := 0; i < n; i++ {
		var (
			id, count []int64
			err       error
		)
		if id, off, rest, err = bits.Unpack(rest, ChannelIDBits, 1, off, false); err != nil {
			return BroadbandPayload{}, fmt.Errorf("%w: channel %d id: %w", ErrFormat, i, err)
		}
		if count, off, rest, err = bits.Unpack(rest, SampleCountBits, 1, off, false); err != nil {
			return BroadbandPayload{}, fmt.Errorf("%w: channel %d sample count: %w", ErrFormat, i, err)
		}

		ch := ChannelData{ChannelID: uint32(id[0])}
		if count[0] > 0 {
			if ch.Samples, off, rest, err = bits.Unpack(rest, width, int(count[0]), off, p.IsSigned); err != nil {
				return BroadbandPayload{}, fmt.Errorf("%w: channel %d samples: %w", ErrFormat, ch.ChannelID, err)
			}
		} else {
			ch.Samples = []int64{}
		}
		p.Channels = append(p.Channels, ch)
	}

	if used := (off + 7) / 8; len(rest) > used {
		return BroadbandPayload{}, fmt.Errorf("%w: %d trailing bytes after last channel", ErrFormat, len(rest)-used)
	}
	return p, nil
}

// Equal reports whether two payloads carry the same header fields and samples.
func (p BroadbandPayload) Equal(other BroadbandPayload) bool {
	if p.IsSigned != other.IsSigned || p.BitWidth != other.BitWidth ||
		p.SampleRate != other.SampleRate || len(p.Channels) != len(other.Channels) {
		return false
	}
	for i := range p.Channels {
		a, b := p.Channels[i], other.Channels[i]
		if a.ChannelID != b.ChannelID || len(a.Samples) != len(b.Samples) {
			return false
		}
		for j := range a.Samples {
			if a.Samples[j] != b.Samples[j] {
				return false
			}
		}
	}
	return true
}

func fitsUnsigned(v uint64, width int) bool {
	return v <= bits.MaxUnsigned(width)
}
