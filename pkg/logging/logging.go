// Package logging owns zerolog configuration for the CLI and the watcher.
// Converters and parsers never log directly; their diagnostics travel through
// observer callbacks that the CLI wires to this package.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level is a log level name as accepted on the command line and in config
// files.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config controls the process-wide logger.
type Config struct {
	// Level is the minimum level to emit. Unknown values mean info.
	Level Level

	// Pretty switches from JSON lines to the human-readable console writer.
	Pretty bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

var defaultLogger zerolog.Logger

// Configure sets up the process-wide logger. Safe to call more than once;
// the last call wins.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339

	switch config.Level {
	case DebugLevel:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case WarnLevel:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case ErrorLevel:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Component returns a sub-logger tagged with a component name, for
// long-running parts like the watcher.
func Component(name string) zerolog.Logger {
	return defaultLogger.With().Str("component", name).Logger()
}

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
