package ultrawire

import (
	"context"
	"fmt"

	"github.com/bronystylecrazy/ultrawire/cmd"
	"github.com/bronystylecrazy/ultrawire/config"
	"github.com/bronystylecrazy/ultrawire/log"
	"github.com/bronystylecrazy/ultrawire/otel"
	"go.uber.org/fx"
	"go.uber.org/multierr"
)

type App struct {
	options []fx.Option
}

// New returns an app running the default modules plus options. Extra commands are
// added with cmd.AsCommander.
func New(options ...fx.Option) *App {
	return &App{options: options}
}

// Build assembles the fx graph for args; the config file is taken from --config.
func (a *App) Build(args []string) fx.Option {
	return fx.Options(
		log.Module(),
		config.Module(cmd.ConfigPathFromArgs(args)),
		otel.Module(),
		cmd.Module(),
		fx.Options(a.options...),
	)
}

// Run starts the graph, executes the command selected by args and stops the graph.
func (a *App) Run(ctx context.Context, args []string) (err error) {
	var root *cmd.Root
	app := fx.New(a.Build(args), fx.Populate(&root))
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		err = multierr.Append(err, app.Stop(context.WithoutCancel(ctx)))
	}()

	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
