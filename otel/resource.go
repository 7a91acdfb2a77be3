package otel

import (
	"context"

	"github.com/bronystylecrazy/ultrawire/build"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

func NewResource(ctx context.Context, config Config) (*resource.Resource, error) {
	name := config.ServiceName
	if name == "" {
		name = build.Name
	}
	return resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(name),
			semconv.ServiceVersion(build.Version),
			semconv.DeploymentEnvironmentName(string(build.Mode)),
		),
	)
}
