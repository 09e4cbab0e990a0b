// Package capture stores packed NDTP messages in files.
//
// A capture file starts with an 8-byte header:
//
//	"NDTC" | format version (1) | flags (1) | 2 reserved zero bytes
//
// followed by a sequence of records, each a 4-byte big-endian length and the
// raw message bytes. When the FlagZstd bit is set, everything after the
// header is one zstd stream.
//
// Records are stored exactly as packed, so the checksum of every message
// travels with it and is verified again when the record is decoded.
//
// # Usage
//
// Write messages:
//
//	w, err := capture.Create(path, capture.WithCompression(true))
//	if err != nil {
//	    return err
//	}
//	for _, raw := range msgs {
//	    if err := w.WriteRecord(raw); err != nil {
//	        return err
//	    }
//	}
//	return w.Close()
//
// Read them back:
//
//	r, err := capture.Open(path, capture.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for {
//	    msg, err := r.NextMessage(ctx)
//	    if err == io.EOF {
//	        break
//	    }
//	    // Process msg...
//	}
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package capture
