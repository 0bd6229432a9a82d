package config

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger writing to w at the given level.
// Unknown levels fall back to info and are reported once.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:     w,
		NoColor: false,
	}).With().Timestamp().Logger()

	parsed := zerolog.InfoLevel
	if level != "" {
		if l, err := zerolog.ParseLevel(level); err == nil {
			parsed = l
		} else {
			logger.Warn().Str("invalid_level", level).Msg("Invalid log level, using default 'info'")
		}
	}

	return logger.Level(parsed)
}
