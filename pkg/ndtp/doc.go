// Package ndtp implements the NDTP wire format: a compact binary framing for
// electrophysiology telemetry.
//
// One wire message is a fixed 12-byte [Header], one payload and a trailing
// big-endian CRC16 computed over the header and payload bytes:
//
//	+---------+-----------+--------------+------------+---------+-------+
//	| version | data_kind | timestamp    | seq_number | payload | crc16 |
//	| 1 byte  | 1 byte    | 8 bytes (BE) | 2 bytes    | ...     | 2 (BE)|
//	+---------+-----------+--------------+------------+---------+-------+
//
// The payload is either a [BroadbandPayload] (multi-channel waveform samples
// at a shared bit width) or a [SpiketrainPayload] (per-channel spike counts
// saturated to a fixed width). Decoding dispatches strictly on the header's
// data kind.
//
// All functions are pure and safe for concurrent use on independent inputs.
//
// # Errors
//
// Failures wrap one of [ErrFormat], [ErrVersion], [ErrRange], [ErrIntegrity]
// or [ErrUnsupportedKind] and can be checked with errors.Is.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package ndtp
