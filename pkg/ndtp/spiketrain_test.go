package ndtp

import (
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func TestSpiketrainPackLayout(t *testing.T) {
	p := SpiketrainPayload{BinSizeMs: 1, SpikeCounts: []uint32{1, 2, 3, 2, 1}}
	got, err := p.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	want := []byte{
		0x00, 0x00, 0x00, 0x05, // count
		0x01,             // bin size
		0x12, 0x32, 0x10, // nibbles 1,2 3,2 1,pad
	}
	td.Cmp(t, got, want)

	back, err := UnpackSpiketrain(got)
	if err != nil {
		t.Fatalf("UnpackSpiketrain() error = %v", err)
	}
	td.Cmp(t, back, p)
}

func TestSpiketrainSaturates(t *testing.T) {
	over, err := SpiketrainPayload{BinSizeMs: 5, SpikeCounts: []uint32{16, 1000, 15}}.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	clamped, err := SpiketrainPayload{BinSizeMs: 5, SpikeCounts: []uint32{15, 15, 15}}.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	td.Cmp(t, over, clamped)

	got, err := UnpackSpiketrain(over)
	if err != nil {
		t.Fatalf("UnpackSpiketrain() error = %v", err)
	}
	td.Cmp(t, got.SpikeCounts, []uint32{MaxSpikeCount, MaxSpikeCount, MaxSpikeCount})
	if !got.Equal(SpiketrainPayload{BinSizeMs: 5, SpikeCounts: []uint32{16, 1000, 15}}) {
		t.Error("Equal() should compare saturated counts")
	}
}

func TestSpiketrainEmpty(t *testing.T) {
	packed, err := SpiketrainPayload{BinSizeMs: 20}.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	td.Cmp(t, packed, []byte{0, 0, 0, 0, 20})

	got, err := UnpackSpiketrain(packed)
	if err != nil {
		t.Fatalf("UnpackSpiketrain() error = %v", err)
	}
	if got.BinSizeMs != 20 || len(got.SpikeCounts) != 0 {
		t.Errorf("UnpackSpiketrain() = %+v", got)
	}
}

func TestUnpackSpiketrainErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "short prefix", data: []byte{0, 0, 0, 1}},
		{name: "missing counts", data: []byte{0, 0, 0, 5, 1, 0x12, 0x32}},
		{name: "huge advertised count", data: []byte{0xFF, 0xFF, 0xFF, 0xFF, 1, 0x12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnpackSpiketrain(tt.data)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("UnpackSpiketrain() error = %v, want ErrFormat", err)
			}
		})
	}
}
