package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global zerolog logger. Pretty output uses the
// console writer; otherwise one JSON object is written per line.
func SetupLogger(debug, pretty bool) zerolog.Logger {
	return setupLogger(os.Stderr, debug, pretty)
}

func setupLogger(w io.Writer, debug, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	logger := zerolog.New(out).With().Timestamp().Str("service", serviceName).Logger()
	log.Logger = logger
	return logger
}
