package bits

import (
	"errors"
	"fmt"
	"math"
)

// MaxWidth is the widest field the codec handles. Values are carried as int64.
const MaxWidth = 64

var (
	// ErrBitWidth is returned when the bit width is zero or wider than MaxWidth.
	ErrBitWidth = errors.New("bits: invalid bit width")

	// ErrRange is returned when a value does not fit the target width.
	ErrRange = errors.New("bits: value out of range")

	// ErrTruncated is returned when the input ends before a value is complete.
	ErrTruncated = errors.New("bits: truncated data")
)

// Pack appends values to existing at width bits each and returns the new
// buffer together with the number of bits occupied in its final byte
// (0 when the buffer ends byte-aligned).
//
// offset is a bit offset into existing: offset/8 leading bytes are dropped
// from the result, and when offset%8 is non-zero the first offset%8 bits of
// the last remaining byte are kept and writing continues right after them.
// existing is never modified.
func Pack(values []int64, width int, existing []byte, offset int, signed bool) ([]byte, int, error) {
	if width <= 0 || width > MaxWidth {
		return nil, 0, fmt.Errorf("%w: %d", ErrBitWidth, width)
	}
	if offset < 0 {
		return nil, 0, fmt.Errorf("bits: negative offset %d", offset)
	}

	drop := offset / 8
	used := offset % 8

	var tail []byte
	if drop < len(existing) {
		tail = existing[drop:]
	}

	out := make([]byte, 0, len(tail)+(len(values)*width+7)/8+1)
	out = append(out, tail...)

	var cur byte
	if used > 0 && len(out) > 0 {
		cur = out[len(out)-1] & ^byte(0xFF>>used)
		out = out[:len(out)-1]
	}

	for i, v := range values {
		u, err := encode(v, width, signed)
		if err != nil {
			return nil, 0, fmt.Errorf("value %d: %w", i, err)
		}
		remaining := width
		for remaining > 0 {
			avail := 8 - used
			n := min(avail, remaining)
			shift := remaining - n
			chunk := byte((u >> shift) & (1<<n - 1))
			cur |= chunk << (avail - n)
			remaining -= n
			used += n
			if used == 8 {
				out = append(out, cur)
				cur = 0
				used = 0
			}
		}
	}

	if used > 0 {
		out = append(out, cur)
	}
	return out, used, nil
}

// Unpack reads up to count values of width bits from data, starting offset
// bits in. The offset/8 leading bytes are dropped first and returned
// remaining bytes begin at that point; the returned offset is relative to
// them, so the pair can be passed straight back into the next call.
//
// A count of zero reads every complete value in data; leftover bits that do
// not form a whole value are an error in that mode. A positive count must be
// satisfiable from data, otherwise ErrTruncated is returned. remaining aliases
// data.
func Unpack(data []byte, width, count, offset int, signed bool) ([]int64, int, []byte, error) {
	if width <= 0 || width > MaxWidth {
		return nil, 0, nil, fmt.Errorf("%w: %d", ErrBitWidth, width)
	}
	if count < 0 || offset < 0 {
		return nil, 0, nil, fmt.Errorf("bits: negative count %d or offset %d", count, offset)
	}

	drop := offset / 8
	start := offset % 8

	var remaining []byte
	if drop < len(data) {
		remaining = data[drop:]
	}

	avail := len(remaining)*8 - start
	if avail < 0 {
		avail = 0
	}

	n := avail / width
	switch {
	case count == 0:
		if avail%width != 0 {
			return nil, 0, nil, fmt.Errorf("%w: %d trailing bits do not form a %d-bit value", ErrTruncated, avail%width, width)
		}
	case count > n:
		return nil, 0, nil, fmt.Errorf("%w: need %d values of %d bits, have %d bits", ErrTruncated, count, width, avail)
	default:
		n = count
	}

	values := make([]int64, n)
	pos := start
	for i := range values {
		var u uint64
		for got := 0; got < width; {
			b := remaining[pos/8]
			bitInByte := pos % 8
			take := min(8-bitInByte, width-got)
			chunk := (b >> (8 - bitInByte - take)) & (1<<take - 1)
			u = u<<take | uint64(chunk)
			got += take
			pos += take
		}
		values[i] = decode(u, width, signed)
	}

	return values, pos, remaining, nil
}

// Fits reports whether v is representable at width bits.
func Fits(v int64, width int, signed bool) bool {
	if width <= 0 || width > MaxWidth {
		return false
	}
	if signed {
		if width == 64 {
			return true
		}
		lo := -(int64(1) << (width - 1))
		hi := int64(1)<<(width-1) - 1
		return v >= lo && v <= hi
	}
	if v < 0 {
		return false
	}
	if width >= 63 {
		return true
	}
	return v <= int64(1)<<width-1
}

// MaxUnsigned returns the largest unsigned value representable at width bits.
func MaxUnsigned(width int) uint64 {
	if width >= 64 {
		return math.MaxUint64
	}
	return uint64(1)<<width - 1
}

func encode(v int64, width int, signed bool) (uint64, error) {
	if !Fits(v, width, signed) {
		kind := "unsigned"
		if signed {
			kind = "signed"
		}
		return 0, fmt.Errorf("%w: %s value %d does not fit in %d bits", ErrRange, kind, v, width)
	}
	return uint64(v) & MaxUnsigned(width), nil
}

func decode(u uint64, width int, signed bool) int64 {
	if signed && width < 64 && u&(uint64(1)<<(width-1)) != 0 {
		return int64(u | ^MaxUnsigned(width))
	}
	return int64(u)
}
