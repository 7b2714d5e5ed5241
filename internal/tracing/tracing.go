// Package tracing configures OpenTelemetry tracing for the bot.
// Spans cover command dispatch and MediaWiki API calls.
package tracing

import (
	"context"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used for all spans.
const TracerName = "wikibot"

// Config holds tracing configuration loaded from OTEL_* environment variables.
type Config struct {
	ServiceName    string  `env:"SERVICE_NAME" envDefault:"wikibot"`
	ServiceVersion string  `env:"SERVICE_VERSION" envDefault:"dev"`
	Environment    string  `env:"ENVIRONMENT" envDefault:"development"`
	Enabled        bool    `env:"ENABLED"`
	OTLPEndpoint   string  `env:"EXPORTER_OTLP_ENDPOINT"`
	SampleRate     float64 `env:"SAMPLE_RATE" envDefault:"1.0"`
}

// LoadConfig reads tracing configuration from the environment.
// Setting an OTLP endpoint enables tracing even without OTEL_ENABLED.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "OTEL_"}); err != nil {
		return Config{}, err
	}
	if cfg.OTLPEndpoint != "" {
		cfg.Enabled = true
	}
	return cfg, nil
}

// Setup initializes OpenTelemetry tracing and returns a shutdown function.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	var exporter sdktrace.SpanExporter
	if cfg.OTLPEndpoint != "" {
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	} else {
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// Tracer returns the bot's named tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span with the given name.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// AddCommandAttributes adds chat command attributes to a span.
func AddCommandAttributes(span trace.Span, command, channelID string) {
	span.SetAttributes(
		attribute.String("bot.command.name", command),
		attribute.String("bot.channel.id", channelID),
	)
}

// AddWikiAttributes adds MediaWiki request attributes to a span.
func AddWikiAttributes(span trace.Span, action, title string) {
	span.SetAttributes(attribute.String("wiki.api.action", action))
	if title != "" {
		span.SetAttributes(attribute.String("wiki.page.title", title))
	}
}

// RecordError records err on the span and marks it failed.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
