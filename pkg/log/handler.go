package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	ierrors "github.com/YuminosukeSato/insurecost/pkg/errors"
)

// ErrFmtHandler is a slog handler that adds the cockroachdb/errors stack trace and the
// taxonomy code (see ErrorCode) of an ErrAttr to the record.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler so records carrying ErrAttr gain a stacktrace attribute.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{
		handler: handler,
	}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var stacktrace, code string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				stacktrace = extractStacktrace(err)
				code = ErrorCode(err)
			}
			return false
		}
		return true
	})
	if stacktrace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
	}
	if code != "" {
		r.AddAttrs(slog.String(ErrorCodeKey, code))
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// ErrorCode maps err onto the standard error code values, or "" for errors outside the
// taxonomy.
func ErrorCode(err error) string {
	switch {
	case ierrors.Is(err, ierrors.ErrDimensionMismatch):
		return ErrorDimensionMismatch
	case ierrors.Is(err, ierrors.ErrInsufficientData):
		return ErrorInsufficientData
	case ierrors.Is(err, ierrors.ErrInvalidInput):
		return ErrorInvalidInput
	default:
		return ""
	}
}
