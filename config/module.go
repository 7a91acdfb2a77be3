package config

import "go.uber.org/fx"

var ModuleName = "ultrawire/config"

// Module loads the configuration at path and exposes each section.
func Module(path string) fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(
			func() (Config, error) { return Load(path) },
			Config.Parts,
		),
	)
}
