package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bft-labs/ndtp/internal/batchfile"
	"github.com/bft-labs/ndtp/pkg/capture"
	"github.com/bft-labs/ndtp/pkg/log"
	"github.com/bft-labs/ndtp/pkg/ndtp"
)

// errUndecodable is returned when some records of a capture could not be
// decoded. Decodable records are still written.
var errUndecodable = errors.New("undecodable records")

func newDecodeCommand(a *app) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Print every message of a capture file as a batch description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := batchfile.NewEncoder(cmd.OutOrStdout(), a.cfg.Format())
			return decodeCapture(cmd.Context(), in, enc, a.cfg.MaxRecordBytes, a.logger)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "capture file to read")
	cmd.Flags().StringVar(&a.cfg.OutputFormat, "format", a.cfg.OutputFormat, "output format (json or cbor)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// decodeCapture writes one description per message of the capture at path.
// Integrity and format failures of single records are logged and skipped.
func decodeCapture(ctx context.Context, path string, enc *batchfile.Encoder, maxRecord int, logger log.Logger) error {
	fileLog := log.With(logger, log.String("file", path))

	r, err := capture.Open(path, capture.WithMaxRecordBytes(maxRecord), capture.WithLogger(fileLog))
	if err != nil {
		return err
	}
	defer r.Close()

	var decoded, failed int
	for {
		msg, err := r.NextMessage(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if isRecordError(err) {
				failed++
				continue
			}
			return err
		}

		desc, err := batchfile.FromMessage(msg)
		if err != nil {
			return err
		}
		if err := enc.Encode(desc); err != nil {
			return fmt.Errorf("write description: %w", err)
		}
		decoded++
	}

	fileLog.Info("capture decoded",
		log.Int("messages", decoded),
		log.Int("failed", failed),
		log.Bool("compressed", r.Compressed()),
	)
	if failed > 0 {
		return fmt.Errorf("%s: %d %w", path, failed, errUndecodable)
	}
	return nil
}

// isRecordError reports whether err concerns one record's content rather
// than the capture stream.
func isRecordError(err error) bool {
	return errors.Is(err, ndtp.ErrIntegrity) ||
		errors.Is(err, ndtp.ErrFormat) ||
		errors.Is(err, ndtp.ErrVersion) ||
		errors.Is(err, ndtp.ErrUnsupportedKind)
}
