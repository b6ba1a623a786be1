// Package logging builds the zerolog.Logger shared by the CLI driver and
// the config package.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a console-writer logger at the given level, tagged with the
// "separator" service name. An unparsable level falls back to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(lvl).With().Timestamp().Str("service", "separator").Logger()
}
