// Package logger holds the process-wide zerolog instance. Output starts as
// a human-readable console writer; production deployments switch to plain
// JSON with SetJSON before traffic arrives.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance.
var Log zerolog.Logger

func init() {
	// Debug until config is loaded, so startup problems are never swallowed.
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	Log = newLogger(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}

func newLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Caller().Logger()
}

// SetLevel maps a config string onto the global log level. Unknown or empty
// values fall back to info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetJSON swaps the console writer for line-delimited JSON on stdout.
func SetJSON() {
	Log = newLogger(os.Stdout)
}
