package otel

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope of compiler spans.
const TracerName = "github.com/bronystylecrazy/ultrawire"

// TracerProvider wraps the configured provider so it can be stopped uniformly.
type TracerProvider struct {
	trace.TracerProvider
	shutdown func(context.Context) error
}

func NewTraceExporter(ctx context.Context, config Config) (sdktrace.SpanExporter, error) {
	switch config.exporter() {
	case ExporterNone:
		return nil, nil
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
		options := []otlptracegrpc.Option{}
		if config.Endpoint != "" {
			options = append(options, otlptracegrpc.WithEndpoint(config.Endpoint))
		}
		if config.Insecure {
			options = append(options, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, options...)
	default:
		return nil, fmt.Errorf("unsupported trace exporter %q", config.Exporter)
	}
}

// NewTracerProvider returns a noop provider when tracing is disabled.
func NewTracerProvider(ctx context.Context, config Config) (*TracerProvider, error) {
	exporter, err := NewTraceExporter(ctx, config)
	if err != nil {
		return nil, err
	}
	if exporter == nil {
		return &TracerProvider{
			TracerProvider: noop.NewTracerProvider(),
			shutdown:       func(context.Context) error { return nil },
		}, nil
	}
	res, err := NewResource(ctx, config)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	return &TracerProvider{TracerProvider: tp, shutdown: tp.Shutdown}, nil
}

// Compiler returns the tracer used for compiler spans.
func (tp *TracerProvider) Compiler() trace.Tracer {
	return tp.Tracer(TracerName)
}

func (tp *TracerProvider) Stop(ctx context.Context) error {
	return tp.shutdown(ctx)
}
