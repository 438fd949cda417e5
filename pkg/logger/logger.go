package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. Dev gets human-readable console
// output at debug level; everything else emits JSON at info.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	if env == "dev" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
		l = zerolog.New(out).Level(zerolog.DebugLevel)
	} else {
		l = zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	}
	return l.With().Timestamp().Str("service", "labres").Logger()
}
