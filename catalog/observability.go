package catalog

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// It follows the same dependency-free pattern as MetricsCollector and TracingCollector,
// so any logging backend that supports context-based correlation can be plugged in.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting Store performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for trace correlation.
// It is optional, the context-aware methods are used when available.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting distributed tracing information.
// Any tracing backend (OpenTelemetry, Jaeger, Zipkin, ...) can be integrated by implementing it.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

const (
	metricQueryDuration        = "catalog_query_duration_seconds"
	metricAppendDuration       = "catalog_append_duration_seconds"
	metricConcurrencyConflicts = "catalog_concurrency_conflicts_total"
	metricInvalidMutations     = "catalog_invalid_mutations_total"
	metricBooksTotal           = "catalog_books"

	spanNameQuery  = "catalog.query"
	spanNameAppend = "catalog.append"

	spanAttrOperation   = "operation"
	spanAttrMaxSequence = "max_sequence"
	spanAttrExpectedSeq = "expected_sequence"
	spanAttrMutations   = "mutation_count"
	spanAttrErrorType   = "error_type"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeCanceled            = "context_canceled"
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeInvalidMutation     = "invalid_mutation"

	logMsgOperation           = "catalog operation: "
	logMsgQueryCompleted      = "query completed"
	logMsgMutationsAppended   = "mutations appended"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgInvalidMutation     = "append refused an invalid mutation"

	logAttrError            = "error"
	logAttrDurationMS       = "duration_ms"
	logAttrBookCount        = "book_count"
	logAttrMemberCount      = "member_count"
	logAttrMutations        = "mutations"
	logAttrSequence         = "sequence"
	logAttrExpectedSequence = "expected_sequence"
	logAttrCurrentSequence  = "current_sequence"
)

// logDebug writes a debug line to every configured logger.
func (s *Store) logDebug(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(logMsgOperation+msg, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgOperation+msg, args...)
	}
}

// logInfo writes an info line to every configured logger.
func (s *Store) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+msg, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+msg, args...)
	}
}

// logError writes an error line to every configured logger.
func (s *Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (s *Store) recordDuration(ctx context.Context, metric string, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

func (s *Store) incrementCounter(ctx context.Context, metric string, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
	}

	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

func (s *Store) recordValue(ctx context.Context, metric string, value float64) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, nil)
		return
	}

	s.metricsCollector.RecordValue(metric, value, nil)
}

func (s *Store) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext) {
	if s.tracingCollector == nil {
		return ctx, nil
	}

	return s.tracingCollector.StartSpan(ctx, name, attrs)
}

func (s *Store) finishSpanSuccess(span SpanContext, attrs map[string]string) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	s.tracingCollector.FinishSpan(span, statusSuccess, attrs)
}

func (s *Store) finishSpanError(span SpanContext, errorType string) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	s.tracingCollector.FinishSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}

func formatSequence(seq SequenceNumber) string {
	return fmt.Sprintf("%d", seq)
}
