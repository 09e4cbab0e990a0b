package ndtp

// Protocol constants for NDTP version 1. There is exactly one supported
// layout per version byte.
const (
	// Version is the only protocol version this package reads or writes.
	Version uint8 = 0x01

	// HeaderSize is the encoded header length in bytes.
	HeaderSize = 12

	// ChecksumSize is the length of the trailing CRC16.
	ChecksumSize = 2

	// MinMessageSize is the shortest buffer Unpack will consider.
	MinMessageSize = 16

	// SampleRateBits is the width of the broadband sample_rate field.
	SampleRateBits = 24

	// SpikeBitWidth is the width of one binned spike count.
	SpikeBitWidth = 4

	// ChannelIDBits is the width of a broadband channel id.
	ChannelIDBits = 24

	// ChannelCountBits is the width of the broadband channel count field.
	ChannelCountBits = 24

	// SampleCountBits is the width of a broadband per-channel sample count.
	SampleCountBits = 16

	// MaxChannelSamples is the most samples one channel may carry in one payload.
	MaxChannelSamples = 1<<SampleCountBits - 1

	// MaxBitWidth is the widest broadband sample this package handles.
	MaxBitWidth = 64

	// MaxPayloadBytes bounds the sample bytes one chunk of a channel may
	// occupy when batches are split into messages.
	MaxPayloadBytes = 1400

	// MaxSpikeCount is the saturation value for binned spike counts.
	MaxSpikeCount = 1<<SpikeBitWidth - 1

	broadbandPrefixSize  = 1 + 3 + SampleRateBits/8
	spiketrainPrefixSize = 4 + 1
)

// DataKind identifies the payload carried by a message. Values come from the
// external data type registry.
type DataKind uint8

// Registry values for the two payload kinds this codec understands.
const (
	DataKindBroadband  DataKind = 3
	DataKindSpiketrain DataKind = 4
)

func (k DataKind) String() string {
	switch k {
	case DataKindBroadband:
		return "broadband"
	case DataKindSpiketrain:
		return "spiketrain"
	default:
		return "unknown"
	}
}
