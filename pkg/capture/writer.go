package capture

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/bft-labs/ndtp/pkg/log"
	"github.com/bft-labs/ndtp/pkg/ndtp"
)

// Writer appends records to a capture stream. It is not safe for concurrent
// use.
type Writer struct {
	buf    *bufio.Writer
	body   io.Writer
	zw     *zstd.Encoder
	file   *os.File
	opts   options
	count  int
	closed bool
}

// NewWriter writes the capture header to w and returns a Writer for the
// records. Close flushes but does not close w.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	o := applyOptions(opts)

	cw := &Writer{buf: bufio.NewWriterSize(w, 64*1024), opts: o}
	var flags uint8
	if o.compress {
		flags |= FlagZstd
	}
	h := encodeHeader(flags)
	if _, err := cw.buf.Write(h[:]); err != nil {
		return nil, fmt.Errorf("write capture header: %w", err)
	}

	cw.body = cw.buf
	if o.compress {
		zw, err := zstd.NewWriter(cw.buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		cw.zw = zw
		cw.body = zw
	}
	return cw, nil
}

// Create creates or truncates the file at path and returns a Writer for it.
// Close also closes the file.
func Create(path string, opts ...Option) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

// WriteRecord appends one packed message.
func (w *Writer) WriteRecord(record []byte) error {
	if w.closed {
		return ErrClosed
	}
	if len(record) > w.opts.maxRecordBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrRecordTooLarge, len(record), w.opts.maxRecordBytes)
	}

	var prefix [recordPrefixSize]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(record)))
	if _, err := w.body.Write(prefix[:]); err != nil {
		return fmt.Errorf("write record %d: %w", w.count, err)
	}
	if _, err := w.body.Write(record); err != nil {
		return fmt.Errorf("write record %d: %w", w.count, err)
	}
	w.count++
	return nil
}

// WriteMessage packs msg and appends it.
func (w *Writer) WriteMessage(msg ndtp.Message) error {
	raw, err := msg.Pack()
	if err != nil {
		return err
	}
	return w.WriteRecord(raw)
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}

// Close finishes the record stream and flushes buffered data.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if w.zw != nil {
		if err := w.zw.Close(); err != nil {
			errs = append(errs, fmt.Errorf("finish zstd stream: %w", err))
		}
	}
	if err := w.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	w.opts.logger.Debug("capture closed",
		log.Int("records", w.count),
		log.Bool("compressed", w.zw != nil),
	)
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
