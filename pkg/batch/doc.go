// Package batch translates domain-level recordings into NDTP wire messages
// and back.
//
// An ElectricalBroadband batch holds full-length sample sequences for any
// number of channels. Packing it splits every channel into chunks that fit
// the per-message sample budget and emits one message per chunk:
//
//	msgs, err := batch.ElectricalBroadband{
//	    BitWidth:   16,
//	    IsSigned:   true,
//	    SampleRate: 30000,
//	    T0:         start,
//	    Channels:   channels,
//	}.Pack(seq)
//
// Sequence numbers increase by one per emitted message across all channels.
// Every chunk carries the batch T0; consumers derive intra-batch timing from
// the sample rate and the chunk position. Reassembling chunks into a full
// batch is left to the caller.
//
// A BinnedSpiketrain batch always fits one message.
//
// # Decoding
//
// Decode and FromMessage dispatch on the header data kind and return the
// matching Data variant:
//
//	d, err := batch.Decode(raw)
//	switch d := d.(type) {
//	case batch.ElectricalBroadband:
//	case batch.BinnedSpiketrain:
//	}
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package batch
