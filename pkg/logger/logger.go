package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rsmmonaem/voter-talika/internal/domain"

	"github.com/rs/zerolog"
)

var _ domain.Logger = (*AppLogger)(nil)

// AppLogger implements the domain.Logger interface on top of zerolog
type AppLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a logger writing to stdout. format is "json" or
// "console"; anything else selects console output.
func NewLogger(levelStr, format string) *AppLogger {
	return NewWithWriter(os.Stdout, levelStr, format)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, levelStr, format string) *AppLogger {
	output := w
	if strings.ToLower(format) != "json" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    w != os.Stdout,
		}
	}

	return &AppLogger{
		logger: zerolog.New(output).Level(parseLogLevel(levelStr)).With().Timestamp().Logger(),
	}
}

// WithComponent returns a logger that tags every line with component.
func (l *AppLogger) WithComponent(component string) *AppLogger {
	return &AppLogger{logger: l.logger.With().Str("component", component).Logger()}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	withFields(l.logger.Info(), fields).Msg(msg)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	withFields(l.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	withFields(l.logger.Debug(), fields).Msg(msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	withFields(l.logger.Warn(), fields).Msg(msg)
}

// withFields adds key/value pairs to the event. A trailing key without a
// value is logged under "extra".
func withFields(e *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			e = e.Interface("extra", fields[i])
			break
		}
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case string:
			e = e.Str(key, v)
		case int:
			e = e.Int(key, v)
		case int64:
			e = e.Int64(key, v)
		case bool:
			e = e.Bool(key, v)
		case time.Duration:
			e = e.Dur(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	return e
}

// parseLogLevel converts string log level to a zerolog level, defaulting to info
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "warning":
		return zerolog.WarnLevel
	case "":
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
