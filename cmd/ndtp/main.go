package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/ndtp/internal/cliconfig"
	"github.com/bft-labs/ndtp/pkg/log"
)

const helpDescription = `
Encode, decode and inspect NDTP telemetry messages.

NDTP frames broadband waveform samples and binned spike counts into compact,
checksummed binary messages. This tool converts batch descriptions (JSON or
CBOR) into capture files of packed messages and back, decodes single
hex-encoded messages, and follows a spool directory as capture files land.

Configuration is read from $HOME/.ndtp/config.toml, then NDTP_* environment
variables, then flags.
`

var exampleUsage = strings.TrimSpace(`
  ndtp encode --in batches.json --out session.ndtc --seq 100 --compress
  ndtp decode --in session.ndtc --format json
  ndtp inspect 0103000000004996...
  ndtp watch --spool-dir /var/spool/ndtp
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries state shared by all subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  log.Logger
}

// load applies file, environment and flag configuration in that order of
// increasing precedence, then builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := cliconfig.Logger(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration", log.Any("config", a.cfg))
	return nil
}

func newRootCommand() *cobra.Command {
	a := &app{cfg: cliconfig.DefaultConfig(), logger: log.NewZerologAdapter()}

	root := &cobra.Command{
		Use:           "ndtp",
		Short:         "Encode, decode and inspect NDTP telemetry messages",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.ndtp/config.toml)")
	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&a.cfg.MaxRecordBytes, "max-record-bytes", a.cfg.MaxRecordBytes, "largest capture record accepted")

	root.AddCommand(
		newEncodeCommand(a),
		newDecodeCommand(a),
		newInspectCommand(a),
		newWatchCommand(a),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.NewZerologAdapter().Error("ndtp", log.Err(err))
		stop()
		os.Exit(1)
	}
}
