package capture

import (
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/ndtp/pkg/log"
)

// File layout constants.
const (
	// Magic opens every capture file.
	Magic = "NDTC"

	// FormatVersion is the only container version this package reads or writes.
	FormatVersion uint8 = 1

	// FlagZstd marks a zstd-compressed record stream.
	FlagZstd uint8 = 1 << 0

	// HeaderSize is the length of the file header.
	HeaderSize = 8

	// DefaultMaxRecordBytes bounds a single record unless overridden.
	DefaultMaxRecordBytes = 16 << 20

	recordPrefixSize = 4
	knownFlags       = FlagZstd
)

// ErrNoMoreRecords is returned at a clean end of the record stream.
var ErrNoMoreRecords = io.EOF

var (
	// ErrBadHeader is returned when a file does not start with a valid
	// capture header.
	ErrBadHeader = errors.New("capture: bad file header")

	// ErrRecordTooLarge is returned when a record exceeds the size limit.
	ErrRecordTooLarge = errors.New("capture: record too large")

	// ErrTruncated is returned when the stream ends inside a record.
	ErrTruncated = errors.New("capture: truncated record")

	// ErrClosed is returned by operations on a closed Writer or Reader.
	ErrClosed = errors.New("capture: closed")
)

type options struct {
	compress       bool
	maxRecordBytes int
	logger         log.Logger
}

func defaultOptions() options {
	return options{
		maxRecordBytes: DefaultMaxRecordBytes,
		logger:         log.NewNoopLogger(),
	}
}

// Option configures a Writer or Reader.
type Option func(*options)

// WithCompression enables zstd compression of the record stream. Readers
// ignore it and follow the file flags.
func WithCompression(enabled bool) Option {
	return func(o *options) { o.compress = enabled }
}

// WithMaxRecordBytes bounds the size of a single record. Values <= 0 keep
// DefaultMaxRecordBytes.
func WithMaxRecordBytes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRecordBytes = n
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func encodeHeader(flags uint8) [HeaderSize]byte {
	var h [HeaderSize]byte
	copy(h[:4], Magic)
	h[4] = FormatVersion
	h[5] = flags
	return h
}

func decodeHeader(h [HeaderSize]byte) (uint8, error) {
	if string(h[:4]) != Magic {
		return 0, fmt.Errorf("%w: magic %q", ErrBadHeader, h[:4])
	}
	if h[4] != FormatVersion {
		return 0, fmt.Errorf("%w: format version %d, want %d", ErrBadHeader, h[4], FormatVersion)
	}
	if h[5]&^knownFlags != 0 {
		return 0, fmt.Errorf("%w: unknown flags %#02x", ErrBadHeader, h[5])
	}
	return h[5], nil
}
