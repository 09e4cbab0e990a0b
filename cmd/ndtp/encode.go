package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bft-labs/ndtp/internal/batchfile"
	"github.com/bft-labs/ndtp/internal/cliconfig"
	"github.com/bft-labs/ndtp/pkg/batch"
	"github.com/bft-labs/ndtp/pkg/capture"
	"github.com/bft-labs/ndtp/pkg/log"
)

func newEncodeCommand(a *app) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Pack batch descriptions into a capture file",
		Long: `Pack batch descriptions into a capture file.

The input holds one or more descriptions (JSON values, or a CBOR sequence
when the file ends in .cbor). Broadband channels longer than one message's
sample budget are split across messages. Sequence numbers start at --seq and
increase by one per message across the whole input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := encodeFile(in, out, uint16(a.cfg.SeqStart), a.cfg, a.logger)
			if err != nil {
				return err
			}
			a.logger.Info("capture written",
				log.String("file", out),
				log.Int("batches", stats.batches),
				log.Int("messages", stats.messages),
				log.Seq(stats.nextSeq),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "batch description file (.json or .cbor)")
	cmd.Flags().StringVar(&out, "out", "", "capture file to write")
	cmd.Flags().IntVar(&a.cfg.SeqStart, "seq", a.cfg.SeqStart, "sequence number of the first message")
	cmd.Flags().BoolVar(&a.cfg.Compress, "compress", a.cfg.Compress, "zstd-compress the record stream")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

type encodeStats struct {
	batches  int
	messages int
	nextSeq  uint16
}

func encodeFile(in, out string, seq uint16, cfg cliconfig.Config, logger log.Logger) (encodeStats, error) {
	stats := encodeStats{nextSeq: seq}

	f, err := os.Open(in)
	if err != nil {
		return stats, err
	}
	defer f.Close()

	descs, err := batchfile.ReadAll(f, batchfile.FormatFromPath(in))
	if err != nil {
		return stats, fmt.Errorf("read %s: %w", in, err)
	}

	w, err := capture.Create(out,
		capture.WithCompression(cfg.Compress),
		capture.WithMaxRecordBytes(cfg.MaxRecordBytes),
		capture.WithLogger(logger),
	)
	if err != nil {
		return stats, err
	}

	for i, desc := range descs {
		d, err := desc.Data()
		if err != nil {
			w.Close()
			return stats, fmt.Errorf("batch %d: %w", i, err)
		}
		msgs, err := batch.Pack(d, stats.nextSeq)
		if err != nil {
			w.Close()
			return stats, fmt.Errorf("batch %d: %w", i, err)
		}
		for _, m := range msgs {
			if err := w.WriteRecord(m); err != nil {
				w.Close()
				return stats, err
			}
		}
		logger.Debug("batch packed",
			log.Int("batch", i),
			log.Kind(d.Kind()),
			log.Int("messages", len(msgs)),
			log.Seq(stats.nextSeq),
		)
		stats.batches++
		stats.messages += len(msgs)
		stats.nextSeq += uint16(len(msgs))
	}
	return stats, w.Close()
}
