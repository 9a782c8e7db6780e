package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init sets up a basic console logger so early startup messages have
// somewhere to go. InitStructured replaces it once APP_ENV is known.
func Init() {
	w := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zlog = zerolog.New(w).With().Timestamp().Logger()
}

// Debug logs a debug message, printf style
func Debug(format string, args ...interface{}) {
	zlog.Debug().Msgf(format, args...)
}

// Info logs an info message, printf style
func Info(format string, args ...interface{}) {
	zlog.Info().Msgf(format, args...)
}

// Warn logs a warning message, printf style
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msgf(format, args...)
}

// Error logs an error message, printf style
func Error(format string, args ...interface{}) {
	zlog.Error().Msgf(format, args...)
}

// Fatal logs the message and exits
func Fatal(format string, args ...interface{}) {
	zlog.Fatal().Msgf(format, args...)
}
