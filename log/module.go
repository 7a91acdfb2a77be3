package log

import "go.uber.org/fx"

var ModuleName = "ultrawire/log"

func Module() fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(NewZapLogger),
		fx.WithLogger(NewEventLogger),
	)
}
