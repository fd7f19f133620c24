package observability

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// InitLogger builds the process logger. An unknown level falls back to info.
func InitLogger(level string, output io.Writer) zerolog.Logger {
	if output == nil {
		output = os.Stdout
	}

	return zerolog.New(output).
		Level(parseLogLevel(level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// WithContext returns a child logger carrying the given fields, added in key
// order so log lines for the same session always read the same way.
func WithContext(logger zerolog.Logger, fields map[string]any) zerolog.Logger {
	l := logger.With()
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		switch v := fields[k].(type) {
		case string:
			l = l.Str(k, v)
		case time.Duration:
			l = l.Dur(k, v)
		case float64:
			l = l.Float64(k, v)
		case fmt.Stringer:
			l = l.Stringer(k, v)
		default:
			l = l.Interface(k, v)
		}
	}
	return l.Logger()
}
