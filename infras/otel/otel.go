package otel

import (
	"context"

	"hotelbooking/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type otelImpl struct {
	provider oteltrace.TracerProvider
	shutdown func(ctx context.Context) error
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

func (o *otelImpl) Shutdown(ctx context.Context) error {
	if o.shutdown == nil {
		return nil
	}

	return o.shutdown(ctx)
}

// New exports spans over OTLP/gRPC. Without an endpoint spans are dropped.
func New(config *config.Config) Otel {
	endpoint := config.External.Otel.Endpoint
	if endpoint == "" {
		log.Warn().Msg("EXTERNAL_OTEL_ENDPOINT is not set, tracing disabled")

		return &otelImpl{provider: noop.NewTracerProvider()}
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create OTLP exporter, tracing disabled")

		return &otelImpl{provider: noop.NewTracerProvider()}
	}

	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.App.Name),
			semconv.DeploymentEnvironmentKey.String(config.Server.Env),
		)),
	)

	otel.SetTracerProvider(traceProvider)

	log.Info().Str("endpoint", endpoint).Msg("Tracing enabled")

	return &otelImpl{
		provider: traceProvider,
		shutdown: traceProvider.Shutdown,
	}
}
