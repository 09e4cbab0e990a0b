package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/ndtp/internal/batchfile"
	"github.com/bft-labs/ndtp/internal/spool"
)

func newWatchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Decode capture files as they appear in a spool directory",
		Long: `Decode capture files as they appear in a spool directory.

Every *.ndtc file already present, and every one created or rewritten later,
is decoded once writes to it have been quiet for the debounce period. Output
is one batch description per message, as with decode. Stops on SIGINT or
SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.SpoolDir == "" {
				return errors.New("spool-dir is required (flag, NDTP_SPOOL_DIR or spool_dir)")
			}
			enc := batchfile.NewEncoder(cmd.OutOrStdout(), a.cfg.Format())

			w := spool.New(spool.Config{
				Dir:      a.cfg.SpoolDir,
				Debounce: a.cfg.Debounce,
			}, func(ctx context.Context, path string) error {
				return decodeCapture(ctx, path, enc, a.cfg.MaxRecordBytes, a.logger)
			}, a.logger)

			if err := w.Run(cmd.Context()); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&a.cfg.SpoolDir, "spool-dir", a.cfg.SpoolDir, "directory to watch for capture files")
	cmd.Flags().DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "quiet period before a file is decoded")
	cmd.Flags().StringVar(&a.cfg.OutputFormat, "format", a.cfg.OutputFormat, "output format (json or cbor)")
	return cmd
}
