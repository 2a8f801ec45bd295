package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/oteladapters"
)

const (
	serviceName    = "libraryd"
	serviceVersion = "dev"

	metricExportInterval = 5 * time.Second
)

// observability holds the adapters handed to the store and the engine. Zero value means disabled.
type observability struct {
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	shutdown         func(context.Context) error
}

func setupObservability(ctx context.Context, cfg Config, stdout slog.Handler) (observability, error) {
	if !cfg.ObservabilityEnabled {
		return observability{shutdown: func(context.Context) error { return nil }}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return observability{}, err
	}

	traceExporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return observability{}, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	meterOptions := []sdkmetric.Option{sdkmetric.WithResource(res)}

	// metrics are only exported over OTLP gRPC, the other protocols trace only
	if cfg.OTLPProtocol == otlpProtocolGRPC {
		metricExporter, err := otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return observability{}, errors.Join(err, tracerProvider.Shutdown(ctx))
		}

		meterOptions = append(meterOptions, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(metricExportInterval)),
		))
	}

	meterProvider := sdkmetric.NewMeterProvider(meterOptions...)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return observability{
		contextualLogger: oteladapters.NewSlogBridgeLogger(serviceName, stdout),
		metricsCollector: oteladapters.NewMetricsCollector(otel.Meter(serviceName)),
		tracingCollector: oteladapters.NewTracingCollector(otel.Tracer(serviceName)),
		shutdown: func(ctx context.Context) error {
			return errors.Join(tracerProvider.Shutdown(ctx), meterProvider.Shutdown(ctx))
		},
	}, nil
}

func newTraceExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.OTLPProtocol {
	case otlpProtocolHTTP:
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.OTLPEndpoint), otlptracehttp.WithInsecure())
	case otlpProtocolStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint), otlptracegrpc.WithInsecure())
	}
}
