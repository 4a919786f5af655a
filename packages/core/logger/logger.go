package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the application logger writing JSON to stdout.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()

	return logger.Level(levelFromEnv())
}

// levelFromEnv reads LOG_LEVEL, defaulting to info.
func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
