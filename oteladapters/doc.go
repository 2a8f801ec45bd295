// Package oteladapters provides OpenTelemetry implementations of the observability interfaces
// declared in package catalog and aliased in lending/shell.
//
//   - MetricsCollector maps durations to histograms, counters to counters, and values to gauges.
//   - TracingCollector starts and finishes OpenTelemetry spans.
//   - SlogBridgeLogger logs through the otelslog bridge, so log records carry the active trace.
//
// The adapters work with any MeterProvider or TracerProvider, which makes them testable with the
// SDK's in-memory readers and exporters.
package oteladapters
