package ndtp

import (
	"errors"

	"github.com/bft-labs/ndtp/pkg/bits"
)

// Error kinds returned by the codec. Detailed errors wrap one of these and
// can be checked with errors.Is.
var (
	// ErrFormat covers short buffers, malformed fields and incomplete bit streams.
	ErrFormat = errors.New("ndtp: malformed data")

	// ErrVersion is returned when a header carries an unsupported version.
	ErrVersion = errors.New("ndtp: unsupported version")

	// ErrRange is returned when an integer does not fit its field width.
	ErrRange = bits.ErrRange

	// ErrIntegrity is returned when the message checksum does not match.
	ErrIntegrity = errors.New("ndtp: checksum mismatch")

	// ErrUnsupportedKind is returned when decoding meets an unknown data kind.
	ErrUnsupportedKind = errors.New("ndtp: unsupported data kind")
)
