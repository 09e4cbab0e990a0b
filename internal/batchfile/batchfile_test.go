package batchfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/bft-labs/ndtp/pkg/batch"
	"github.com/bft-labs/ndtp/pkg/ndtp"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: " CBOR ", want: FormatCBOR},
		{in: "yaml", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	td.Cmp(t, FormatFromPath("a/b.cbor"), FormatCBOR)
	td.Cmp(t, FormatFromPath("a/b.CBOR"), FormatCBOR)
	td.Cmp(t, FormatFromPath("a/b.json"), FormatJSON)
	td.Cmp(t, FormatFromPath("batches"), FormatJSON)
}

func TestDecodeJSON(t *testing.T) {
	doc := `
{"kind": "broadband", "t0": 1000, "bit_width": 12, "sample_rate": 30000,
 "channels": [{"id": 1, "samples": [1, 2, 3]}]}
{"kind": "spiketrain", "t0": 2000, "bin_size_ms": 5, "spike_counts": [0, 3, 20]}
`
	descs, err := ReadAll(strings.NewReader(doc), FormatJSON)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	td.Cmp(t, len(descs), 2)

	b, err := descs[0].Data()
	if err != nil {
		t.Fatalf("Data() error = %v", err)
	}
	td.Cmp(t, b, batch.ElectricalBroadband{
		BitWidth:   12,
		SampleRate: 30000,
		T0:         1000,
		Channels:   []ndtp.ChannelData{{ChannelID: 1, Samples: []int64{1, 2, 3}}},
	})

	s, err := descs[1].Data()
	if err != nil {
		t.Fatalf("Data() error = %v", err)
	}
	td.Cmp(t, s, batch.BinnedSpiketrain{T0: 2000, BinSizeMs: 5, SpikeCounts: []uint32{0, 3, 20}})
}

func TestStreamRoundTrip(t *testing.T) {
	seq := uint16(9)
	descs := []Description{
		{
			Kind:       "broadband",
			T0:         1,
			Seq:        &seq,
			BitWidth:   16,
			IsSigned:   true,
			SampleRate: 1000,
			Channels:   []Channel{{ID: 3, Samples: []int64{-5, 5}}},
		},
		{Kind: "spiketrain", T0: 2, BinSizeMs: 1, SpikeCounts: []uint32{1, 2}},
	}
	for _, format := range []Format{FormatJSON, FormatCBOR} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf, format)
			for _, d := range descs {
				if err := enc.Encode(d); err != nil {
					t.Fatalf("Encode() error = %v", err)
				}
			}
			got, err := ReadAll(&buf, format)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			td.Cmp(t, got, descs)
		})
	}
}

func TestFromMessage(t *testing.T) {
	msg := ndtp.NewMessage(77, 12, ndtp.SpiketrainPayload{BinSizeMs: 3, SpikeCounts: []uint32{4}})
	desc, err := FromMessage(msg)
	if err != nil {
		t.Fatalf("FromMessage() error = %v", err)
	}
	seq := uint16(12)
	td.Cmp(t, desc, Description{
		Kind:        "spiketrain",
		T0:          77,
		Seq:         &seq,
		BinSizeMs:   3,
		SpikeCounts: []uint32{4},
	})

	_, err = FromMessage(ndtp.Message{Header: ndtp.NewHeader(ndtp.DataKind(1), 0, 0)})
	if !errors.Is(err, ndtp.ErrUnsupportedKind) {
		t.Errorf("FromMessage(unknown) error = %v, want ErrUnsupportedKind", err)
	}
}

func TestInvalidDescriptions(t *testing.T) {
	tests := []struct {
		name string
		desc Description
	}{
		{name: "unknown kind", desc: Description{Kind: "lfp"}},
		{name: "broadband with spikes", desc: Description{Kind: "broadband", BitWidth: 8, SpikeCounts: []uint32{1}}},
		{name: "spiketrain with channels", desc: Description{Kind: "spiketrain", Channels: []Channel{{ID: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.desc.Data(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Data() error = %v, want ErrInvalid", err)
			}
		})
	}

	_, err := ReadAll(strings.NewReader(`{"kind": "broadband", "bogus": 1}`), FormatJSON)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown field error = %v, want ErrInvalid", err)
	}
}
