package capture

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/bft-labs/ndtp/pkg/log"
	"github.com/bft-labs/ndtp/pkg/ndtp"
)

// Reader reads records from a capture stream. It is not safe for concurrent
// use.
type Reader struct {
	body   io.Reader
	zr     *zstd.Decoder
	file   *os.File
	flags  uint8
	opts   options
	count  int
	closed bool
}

// NewReader validates the capture header read from r and returns a Reader
// for the records.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	o := applyOptions(opts)
	br := bufio.NewReaderSize(r, 64*1024)

	var h [HeaderSize]byte
	if _, err := io.ReadFull(br, h[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	flags, err := decodeHeader(h)
	if err != nil {
		return nil, err
	}

	cr := &Reader{body: br, flags: flags, opts: o}
	if flags&FlagZstd != 0 {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		cr.zr = zr
		cr.body = zr
	}
	return cr, nil
}

// Open opens the capture file at path. Close also closes the file.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, opts...)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r.file = f
	return r, nil
}

// Compressed reports whether the record stream is zstd-compressed.
func (r *Reader) Compressed() bool {
	return r.flags&FlagZstd != 0
}

// Next returns the next raw record. It returns ErrNoMoreRecords at a clean
// end of stream and ErrTruncated when the stream stops inside a record.
func (r *Reader) Next(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if r.closed {
		return nil, ErrClosed
	}

	var prefix [recordPrefixSize]byte
	if _, err := io.ReadFull(r.body, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoMoreRecords
		}
		return nil, r.readErr(err)
	}

	n := binary.BigEndian.Uint32(prefix[:])
	if uint64(n) > uint64(r.opts.maxRecordBytes) {
		return nil, fmt.Errorf("%w: record %d is %d bytes, limit %d", ErrRecordTooLarge, r.count, n, r.opts.maxRecordBytes)
	}

	record := make([]byte, n)
	if _, err := io.ReadFull(r.body, record); err != nil {
		return nil, r.readErr(err)
	}
	r.count++
	return record, nil
}

// NextMessage reads the next record and decodes it. A record that fails to
// decode is reported with its index; the reader stays usable.
func (r *Reader) NextMessage(ctx context.Context) (ndtp.Message, error) {
	raw, err := r.Next(ctx)
	if err != nil {
		return ndtp.Message{}, err
	}
	msg, err := ndtp.Unpack(raw)
	if err != nil {
		r.opts.logger.Warn("undecodable record",
			log.Int("record", r.count-1),
			log.Int("bytes", len(raw)),
			log.Err(err),
		)
		return ndtp.Message{}, fmt.Errorf("record %d: %w", r.count-1, err)
	}
	return msg, nil
}

// Count returns the number of records read so far.
func (r *Reader) Count() int {
	return r.count
}

// Close releases the decoder and the file opened by Open.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.zr != nil {
		r.zr.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func (r *Reader) readErr(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: record %d", ErrTruncated, r.count)
	}
	return fmt.Errorf("read record %d: %w", r.count, err)
}
