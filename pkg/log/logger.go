package log

import (
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"

	ierrors "github.com/YuminosukeSato/insurecost/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// Output formats accepted by SetupLogger.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// SetupLogger configures process-wide logging: the default provider becomes a zerolog
// logger writing to w, and slog's default logger becomes a JSON handler on w wrapped by
// ErrFmtHandler. Warnings raised through pkg/errors are routed to the new provider.
func SetupLogger(w io.Writer, level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	out := w
	switch format {
	case FormatJSON, "":
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	default:
		return ierrors.NewInvalidInputError("log.SetupLogger", "format", format, `must be "json" or "console"`)
	}
	provider := NewZerologProvider(out, lvl)
	SetProvider(provider)

	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     slog.Level(lvl),
	}
	slog.SetDefault(slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))))

	warnLogger := provider.GetLoggerWithName("warnings")
	ierrors.SetWarningHandler(func(warning error) {
		warnLogger.Warn(warning.Error(), "warning", warning)
	})
	return nil
}

// ParseLevel converts "debug", "info", "warn" or "error" into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, ierrors.NewInvalidInputError("log.ParseLevel", "level", level, "unknown log level")
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
