package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/ndtp/internal/batchfile"
	"github.com/bft-labs/ndtp/pkg/log"
	"github.com/bft-labs/ndtp/pkg/ndtp"
)

func newInspectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect HEX",
		Short: "Decode one hex-encoded message",
		Long: `Decode one hex-encoded message, log its header and payload summary and
print its batch description. Whitespace and an optional 0x prefix are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseHex(args[0])
			if err != nil {
				return err
			}
			msg, err := ndtp.Unpack(raw)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			logMessage(a.logger, msg, len(raw))

			desc, err := batchfile.FromMessage(msg)
			if err != nil {
				return err
			}
			return batchfile.NewEncoder(cmd.OutOrStdout(), a.cfg.Format()).Encode(desc)
		},
	}
	cmd.Flags().StringVar(&a.cfg.OutputFormat, "format", a.cfg.OutputFormat, "output format (json or cbor)")
	return cmd
}

func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return b, nil
}

func logMessage(logger log.Logger, msg ndtp.Message, size int) {
	fields := []log.Field{
		log.Kind(msg.Header.DataKind),
		log.Seq(msg.Header.SeqNumber),
		log.Uint64("timestamp_us", msg.Header.Timestamp),
		log.Int("bytes", size),
		log.String("checksum", fmt.Sprintf("%#04x", msg.Checksum)),
	}
	switch p := msg.Payload.(type) {
	case ndtp.BroadbandPayload:
		samples := 0
		for _, ch := range p.Channels {
			samples += len(ch.Samples)
		}
		fields = append(fields,
			log.Int("bit_width", int(p.BitWidth)),
			log.Bool("signed", p.IsSigned),
			log.Int("sample_rate", int(p.SampleRate)),
			log.Int("channels", len(p.Channels)),
			log.Int("samples", samples),
		)
	case ndtp.SpiketrainPayload:
		fields = append(fields,
			log.Int("bin_size_ms", int(p.BinSizeMs)),
			log.Int("counts", len(p.SpikeCounts)),
		)
	}
	logger.Info("message", fields...)
}
