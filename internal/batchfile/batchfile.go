// Package batchfile reads and writes batch description documents, the
// human-editable form of NDTP batches used by the command line tool.
//
// A stream holds any number of descriptions: concatenated JSON values for
// the JSON format, a CBOR sequence for the CBOR format. Decoding a capture
// file produces one description per message, which can be fed back to the
// encoder unchanged.
package batchfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/bft-labs/ndtp/pkg/batch"
	"github.com/bft-labs/ndtp/pkg/ndtp"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ErrInvalid is returned for descriptions that do not describe a batch.
var ErrInvalid = errors.New("batchfile: invalid description")

// encMode uses Core Deterministic Encoding so equal descriptions produce
// identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("batchfile: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("batchfile: CBOR decoder initialization failed: " + err.Error())
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or cbor)", s)
	}
}

// FormatFromPath picks the format from a file extension. Anything other
// than .cbor is treated as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		return FormatCBOR
	}
	return FormatJSON
}

// Channel is one channel of a broadband description.
type Channel struct {
	ID      uint32  `json:"id" cbor:"id"`
	Samples []int64 `json:"samples" cbor:"samples"`
}

// Description is the document form of one batch. Kind selects which of the
// remaining fields apply.
type Description struct {
	Kind string `json:"kind" cbor:"kind"`
	T0   uint64 `json:"t0" cbor:"t0"`

	// Seq is informational: set when the description was decoded from a
	// message, ignored when encoding.
	Seq *uint16 `json:"seq,omitempty" cbor:"seq,omitempty"`

	BitWidth   uint8     `json:"bit_width,omitempty" cbor:"bit_width,omitempty"`
	IsSigned   bool      `json:"is_signed,omitempty" cbor:"is_signed,omitempty"`
	SampleRate uint32    `json:"sample_rate,omitempty" cbor:"sample_rate,omitempty"`
	Channels   []Channel `json:"channels,omitempty" cbor:"channels,omitempty"`

	BinSizeMs   uint8    `json:"bin_size_ms,omitempty" cbor:"bin_size_ms,omitempty"`
	SpikeCounts []uint32 `json:"spike_counts,omitempty" cbor:"spike_counts,omitempty"`
}

// FromData builds the description of a batch.
func FromData(d batch.Data) Description {
	switch d := d.(type) {
	case batch.ElectricalBroadband:
		desc := Description{
			Kind:       ndtp.DataKindBroadband.String(),
			T0:         d.T0,
			BitWidth:   d.BitWidth,
			IsSigned:   d.IsSigned,
			SampleRate: d.SampleRate,
			Channels:   make([]Channel, 0, len(d.Channels)),
		}
		for _, ch := range d.Channels {
			desc.Channels = append(desc.Channels, Channel{ID: ch.ChannelID, Samples: ch.Samples})
		}
		return desc
	case batch.BinnedSpiketrain:
		return Description{
			Kind:        ndtp.DataKindSpiketrain.String(),
			T0:          d.T0,
			BinSizeMs:   d.BinSizeMs,
			SpikeCounts: d.SpikeCounts,
		}
	default:
		return Description{Kind: "unknown"}
	}
}

// FromMessage builds the description of a decoded message, including its
// sequence number.
func FromMessage(msg ndtp.Message) (Description, error) {
	d, err := batch.FromMessage(msg)
	if err != nil {
		return Description{}, err
	}
	desc := FromData(d)
	seq := msg.Header.SeqNumber
	desc.Seq = &seq
	return desc, nil
}

// Data converts the description into a batch.
func (d Description) Data() (batch.Data, error) {
	switch strings.ToLower(d.Kind) {
	case ndtp.DataKindBroadband.String():
		if len(d.SpikeCounts) > 0 || d.BinSizeMs != 0 {
			return nil, fmt.Errorf("%w: broadband description has spiketrain fields", ErrInvalid)
		}
		b := batch.ElectricalBroadband{
			BitWidth:   d.BitWidth,
			IsSigned:   d.IsSigned,
			SampleRate: d.SampleRate,
			T0:         d.T0,
			Channels:   make([]ndtp.ChannelData, 0, len(d.Channels)),
		}
		for _, ch := range d.Channels {
			b.Channels = append(b.Channels, ndtp.ChannelData{ChannelID: ch.ID, Samples: ch.Samples})
		}
		return b, nil
	case ndtp.DataKindSpiketrain.String():
		if len(d.Channels) > 0 || d.BitWidth != 0 || d.SampleRate != 0 {
			return nil, fmt.Errorf("%w: spiketrain description has broadband fields", ErrInvalid)
		}
		return batch.BinnedSpiketrain{
			T0:          d.T0,
			BinSizeMs:   d.BinSizeMs,
			SpikeCounts: d.SpikeCounts,
		}, nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrInvalid, d.Kind)
	}
}

// Encoder writes a stream of descriptions.
type Encoder struct {
	js *json.Encoder
	cb *cbor.Encoder
}

// NewEncoder returns an encoder writing format to w.
func NewEncoder(w io.Writer, format Format) *Encoder {
	if format == FormatCBOR {
		return &Encoder{cb: encMode.NewEncoder(w)}
	}
	return &Encoder{js: json.NewEncoder(w)}
}

// Encode writes one description.
func (e *Encoder) Encode(d Description) error {
	if e.cb != nil {
		return e.cb.Encode(d)
	}
	return e.js.Encode(d)
}

// Decoder reads a stream of descriptions.
type Decoder struct {
	js *json.Decoder
	cb *cbor.Decoder
}

// NewDecoder returns a decoder reading format from r.
func NewDecoder(r io.Reader, format Format) *Decoder {
	if format == FormatCBOR {
		return &Decoder{cb: decMode.NewDecoder(r)}
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return &Decoder{js: dec}
}

// Decode reads the next description. It returns io.EOF at the end of the
// stream.
func (d *Decoder) Decode() (Description, error) {
	var desc Description
	var err error
	if d.cb != nil {
		err = d.cb.Decode(&desc)
	} else {
		err = d.js.Decode(&desc)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Description{}, io.EOF
		}
		return Description{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return desc, nil
}

// ReadAll decodes every description in r.
func ReadAll(r io.Reader, format Format) ([]Description, error) {
	dec := NewDecoder(r, format)
	var out []Description
	for {
		desc, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("description %d: %w", len(out), err)
		}
		out = append(out, desc)
	}
}
