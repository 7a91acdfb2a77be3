package otel

import (
	"context"

	"go.uber.org/fx"
)

var ModuleName = "ultrawire/otel"

func Module() fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(newTracerProvider),
	)
}

func newTracerProvider(lc fx.Lifecycle, config Config) (*TracerProvider, error) {
	tp, err := NewTracerProvider(context.Background(), config)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: tp.Stop})
	return tp, nil
}
