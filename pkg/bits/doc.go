// Package bits packs and unpacks integer sequences at arbitrary,
// non-byte-aligned bit widths.
//
// Values are written most-significant-bit first within each byte and laid
// end to end with no padding between them. Only the final byte of a packed
// buffer may be partially filled; its unused low bits are zero.
//
// # Resuming
//
// Both directions can be resumed across calls so heterogeneous fields can
// share one bit stream:
//
//	buf, off, err := bits.Pack([]int64{id}, 24, nil, 0, false)
//	buf, off, err = bits.Pack([]int64{n}, 16, buf, off, false)
//	buf, off, err = bits.Pack(samples, 12, buf, off, true)
//
// Pack returns the number of bits used in the last byte of buf, which is the
// offset to hand to the next call. Unpack returns an offset relative to the
// remaining bytes it hands back:
//
//	ids, off, rest, err := bits.Unpack(buf, 24, 1, 0, false)
//	ns, off, rest, err := bits.Unpack(rest, 16, 1, off, false)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package bits
