// Package ndtp is the entry point to the NDTP codec.
//
// It re-exports the message framer and the domain batch adapters so most
// callers need a single import:
//
//	raws, err := ndtp.PackBatch(ndtp.ElectricalBroadband{
//	    BitWidth:   16,
//	    IsSigned:   true,
//	    SampleRate: 30000,
//	    T0:         start,
//	    Channels:   []ndtp.ChannelData{{ChannelID: 1, Samples: samples}},
//	}, seq)
//
//	for _, raw := range raws {
//	    d, err := ndtp.DecodeBatch(raw)
//	    ...
//	}
//
// The packages under pkg/ expose the individual layers: pkg/bits for the
// bit codec, pkg/ndtp for headers, payloads and messages, pkg/batch for the
// domain adapters and pkg/capture for capture files.
package ndtp

import (
	"github.com/bft-labs/ndtp/pkg/batch"
	"github.com/bft-labs/ndtp/pkg/ndtp"
)

// Message is one complete wire message.
type Message = ndtp.Message

// Header is the fixed framing block at the start of every message.
type Header = ndtp.Header

// Payload is the closed set of payload kinds.
type Payload = ndtp.Payload

// BroadbandPayload carries multi-channel waveform samples.
type BroadbandPayload = ndtp.BroadbandPayload

// SpiketrainPayload carries one time bin of spike counts.
type SpiketrainPayload = ndtp.SpiketrainPayload

// ChannelData is one channel's samples.
type ChannelData = ndtp.ChannelData

// DataKind identifies the payload carried by a message.
type DataKind = ndtp.DataKind

// BatchData is the closed set of batch kinds.
type BatchData = batch.Data

// ElectricalBroadband is a batch of waveform samples.
type ElectricalBroadband = batch.ElectricalBroadband

// BinnedSpiketrain is one time bin of spike counts.
type BinnedSpiketrain = batch.BinnedSpiketrain

// Data kinds understood by the codec.
const (
	DataKindBroadband  = ndtp.DataKindBroadband
	DataKindSpiketrain = ndtp.DataKindSpiketrain
)

// Error kinds, checked with errors.Is.
var (
	ErrFormat          = ndtp.ErrFormat
	ErrVersion         = ndtp.ErrVersion
	ErrRange           = ndtp.ErrRange
	ErrIntegrity       = ndtp.ErrIntegrity
	ErrUnsupportedKind = ndtp.ErrUnsupportedKind
)

// NewMessage builds a message whose header kind matches the payload.
func NewMessage(timestamp uint64, seq uint16, payload Payload) Message {
	return ndtp.NewMessage(timestamp, seq, payload)
}

// Unpack verifies and decodes one wire message.
func Unpack(data []byte) (Message, error) {
	return ndtp.Unpack(data)
}

// PackBatch encodes every message of a batch, numbered from seq.
func PackBatch(d BatchData, seq uint16) ([][]byte, error) {
	return batch.Pack(d, seq)
}

// DecodeBatch decodes one wire message into its batch variant.
func DecodeBatch(data []byte) (BatchData, error) {
	return batch.Decode(data)
}
