// Package obs provides logging setup shared by every apiscout component.
package obs

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger.
// A nil writer keeps zerolog's default (stderr).
func InitLogger(level string, w io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if w != nil {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}

	// Pretty print in development
	if os.Getenv("ENV") == "dev" {
		out := w
		if out == nil {
			out = os.Stderr
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: w != nil})
	}
}

// OpenLogFile opens path for appending log output
func OpenLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Logger returns a new logger with the given component name
func Logger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
