package cliconfig

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bft-labs/ndtp/pkg/log"
)

// Logger returns a console logger on stderr filtered at level.
func Logger(level string) (*log.ZerologAdapter, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	return log.NewZerologAdapterLevel(os.Stderr, lvl), nil
}
