package ndtp

import (
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/bft-labs/ndtp/pkg/bits"
)

func TestBroadbandPackLayout(t *testing.T) {
	p := BroadbandPayload{
		BitWidth:   12,
		SampleRate: 3,
		Channels:   []ChannelData{{ChannelID: 0, Samples: []int64{1, 2, 3}}},
	}
	got, err := p.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	want := []byte{
		12 << 1,          // bit width, unsigned
		0x00, 0x00, 0x01, // channel count
		0x00, 0x00, 0x03, // sample rate
		0x00, 0x00, 0x00, // channel id
		0x00, 0x03, // sample count
		0x00, 0x10, 0x02, 0x00, 0x30, // 001 002 003, zero padded
	}
	td.Cmp(t, got, want)

	back, err := UnpackBroadband(got)
	if err != nil {
		t.Fatalf("UnpackBroadband() error = %v", err)
	}
	td.Cmp(t, back.Channels[0].Samples, []int64{1, 2, 3})
}

func TestBroadbandRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload BroadbandPayload
	}{
		{
			name: "three unsigned channels",
			payload: BroadbandPayload{
				BitWidth:   12,
				SampleRate: 3,
				Channels: []ChannelData{
					{ChannelID: 0, Samples: []int64{1, 2, 3}},
					{ChannelID: 1, Samples: []int64{4, 5, 6}},
					{ChannelID: 2, Samples: []int64{3000, 2000, 1000}},
				},
			},
		},
		{
			name: "signed odd width across byte boundaries",
			payload: BroadbandPayload{
				IsSigned:   true,
				BitWidth:   5,
				SampleRate: 30000,
				Channels: []ChannelData{
					{ChannelID: 7, Samples: []int64{-16, 15, 0, -1, 3}},
					{ChannelID: 1<<24 - 1, Samples: []int64{-2}},
					{ChannelID: 9, Samples: []int64{}},
					{ChannelID: 10, Samples: []int64{1, 2}},
				},
			},
		},
		{
			name: "no channels",
			payload: BroadbandPayload{
				BitWidth:   16,
				SampleRate: 1<<24 - 1,
			},
		},
		{
			name: "single bit samples",
			payload: BroadbandPayload{
				BitWidth:   1,
				SampleRate: 1000,
				Channels:   []ChannelData{{ChannelID: 3, Samples: []int64{1, 0, 1, 1, 0, 0, 1}}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := tt.payload.Pack()
			if err != nil {
				t.Fatalf("Pack() error = %v", err)
			}
			got, err := UnpackBroadband(packed)
			if err != nil {
				t.Fatalf("UnpackBroadband() error = %v", err)
			}
			if !got.Equal(tt.payload) {
				t.Errorf("round trip = %+v, want %+v", got, tt.payload)
			}
			if len(packed) != tt.payload.sizeHint() {
				t.Errorf("len(packed) = %d, want %d", len(packed), tt.payload.sizeHint())
			}
		})
	}
}

func TestBroadbandPackErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload BroadbandPayload
		want    error
	}{
		{
			name:    "zero bit width",
			payload: BroadbandPayload{BitWidth: 0},
			want:    bits.ErrBitWidth,
		},
		{
			name:    "bit width beyond int64",
			payload: BroadbandPayload{BitWidth: 100},
			want:    bits.ErrBitWidth,
		},
		{
			name:    "sample rate too wide",
			payload: BroadbandPayload{BitWidth: 8, SampleRate: 1 << 24},
			want:    ErrRange,
		},
		{
			name: "channel id too wide",
			payload: BroadbandPayload{BitWidth: 8, Channels: []ChannelData{
				{ChannelID: 1 << 24, Samples: []int64{1}},
			}},
			want: ErrRange,
		},
		{
			name: "sample overflow is rejected",
			payload: BroadbandPayload{BitWidth: 4, Channels: []ChannelData{
				{ChannelID: 1, Samples: []int64{16}},
			}},
			want: ErrRange,
		},
		{
			name: "negative unsigned sample",
			payload: BroadbandPayload{BitWidth: 8, Channels: []ChannelData{
				{ChannelID: 1, Samples: []int64{-1}},
			}},
			want: ErrRange,
		},
		{
			name: "too many samples",
			payload: BroadbandPayload{BitWidth: 1, Channels: []ChannelData{
				{ChannelID: 1, Samples: make([]int64, MaxChannelSamples+1)},
			}},
			want: ErrRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.payload.Pack()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Pack() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnpackBroadbandErrors(t *testing.T) {
	valid, err := BroadbandPayload{
		BitWidth:   12,
		SampleRate: 3,
		Channels:   []ChannelData{{ChannelID: 0, Samples: []int64{1, 2, 3}}},
	}.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	zeroWidth := append([]byte(nil), valid...)
	zeroWidth[0] = 0

	trailing := append(append([]byte(nil), valid...), 0x00)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "short prefix", data: valid[:5]},
		{name: "zero bit width", data: zeroWidth},
		{name: "truncated samples", data: valid[:len(valid)-2]},
		{name: "truncated channel header", data: valid[:9]},
		{name: "trailing bytes", data: trailing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnpackBroadband(tt.data)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("UnpackBroadband() error = %v, want ErrFormat", err)
			}
		})
	}
}
