package oteladapters

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// SlogBridgeLogger implements catalog.ContextualLogger on top of log/slog.
//
// Built with NewSlogBridgeLogger, every record goes to the OpenTelemetry slog bridge, which attaches
// the trace and span id from ctx and exports through the global LoggerProvider. Additional handlers,
// e.g. a JSON handler on stdout, receive the same records.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger that writes to the otelslog bridge named name and to all handlers.
func NewSlogBridgeLogger(name string, handlers ...slog.Handler) *SlogBridgeLogger {
	return newBridgeLogger(otelslog.NewHandler(name), handlers)
}

// NewSlogBridgeLoggerForProvider is NewSlogBridgeLogger with an explicit LoggerProvider.
func NewSlogBridgeLoggerForProvider(name string, provider log.LoggerProvider, handlers ...slog.Handler) *SlogBridgeLogger {
	return newBridgeLogger(otelslog.NewHandler(name, otelslog.WithLoggerProvider(provider)), handlers)
}

func newBridgeLogger(bridge slog.Handler, handlers []slog.Handler) *SlogBridgeLogger {
	all := append([]slog.Handler{bridge}, handlers...)

	return &SlogBridgeLogger{logger: slog.New(fanoutHandler(all))}
}

// NewSlogBridgeLoggerWithHandler creates a logger that only writes to handler, without the bridge.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

// DebugContext logs at debug level.
func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs at info level.
func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs at warn level.
func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs at error level.
func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

var _ catalog.ContextualLogger = (*SlogBridgeLogger)(nil)

// fanoutHandler hands every record to all handlers that are enabled for its level.
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error

	for _, handler := range h {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, handler := range h {
		next[i] = handler.WithAttrs(attrs)
	}

	return next
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, handler := range h {
		next[i] = handler.WithGroup(name)
	}

	return next
}
