package tracing

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"unirise-backend/internal/shared/telemetry"
)

// Options configures the tracer provider.
type Options struct {
	Enabled     bool
	Exporter    string // "stdout" or "otlp"
	ServiceName string
	Environment string
	// Writer receives stdout exporter output; defaults to os.Stdout.
	Writer io.Writer
}

// Init installs a global tracer provider and returns its shutdown func.
// When tracing is disabled the global no-op provider is left in place.
// OTLP endpoint and headers come from the standard OTEL_EXPORTER_OTLP_*
// variables.
func Init(ctx context.Context, opts Options) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !opts.Enabled {
		return noop, nil
	}
	serviceName := strings.TrimSpace(opts.ServiceName)
	if serviceName == "" {
		serviceName = "unirise-api"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("deployment.environment", opts.Environment),
		),
	)
	if err != nil {
		telemetry.Warn("otel.resource_failed", map[string]any{"error": err})
	}

	exporter, err := buildExporter(ctx, opts)
	if err != nil {
		return noop, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio()))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	telemetry.Info("otel.initialized", map[string]any{"service": serviceName, "exporter": exporterName(opts)})
	return tp.Shutdown, nil
}

func buildExporter(ctx context.Context, opts Options) (sdktrace.SpanExporter, error) {
	if exporterName(opts) == "otlp" {
		return otlptracehttp.New(ctx)
	}
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	return stdouttrace.New(stdouttrace.WithWriter(w))
}

func exporterName(opts Options) string {
	if strings.EqualFold(strings.TrimSpace(opts.Exporter), "otlp") {
		return "otlp"
	}
	return "stdout"
}

func sampleRatio() float64 {
	raw := strings.TrimSpace(os.Getenv("OTEL_SAMPLER_RATIO"))
	if raw == "" {
		return 1
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
