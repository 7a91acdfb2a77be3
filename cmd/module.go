package cmd

import (
	"go.uber.org/fx"
)

const CommandersGroupName = "ultrawire/cmd/commanders"

var ModuleName = "ultrawire/cmd"

type registerParams struct {
	fx.In

	Root     *Root
	Commands []Commander `group:"ultrawire/cmd/commanders"`
}

// AsCommander annotates constructor so its result joins the commanders group.
func AsCommander(constructor any) any {
	return fx.Annotate(
		constructor,
		fx.As(new(Commander)),
		fx.ResultTags(`group:"`+CommandersGroupName+`"`),
	)
}

// Module provides the root command, the compile pipeline and the built-in commands.
func Module(extends ...fx.Option) fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(
			NewRoot,
			NewPipeline,
			AsCommander(NewCompileCommand),
			AsCommander(NewWatchCommand),
			AsCommander(NewVersionCommand),
		),
		fx.Options(extends...),
		fx.Invoke(RegisterCommands),
	)
}

func RegisterCommands(params registerParams) error {
	return params.Root.Register(params.Commands...)
}
