package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/bronystylecrazy/ultrawire/log"
	"github.com/bronystylecrazy/ultrawire/otel"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const (
	DefaultFile     = "ultrawire.yaml"
	EnvPrefix       = "ULTRAWIRE"
	DefaultServices = "services.yaml"
)

// Config is the application configuration.
type Config struct {
	Log     log.Config    `mapstructure:"log"`
	Compile CompileConfig `mapstructure:"compile"`
	Trace   otel.Config   `mapstructure:"trace"`
}

// CompileConfig holds the defaults of the compile and watch commands.
type CompileConfig struct {
	Services string        `mapstructure:"services" validate:"required"`
	Format   string        `mapstructure:"format" validate:"oneof=text yaml json"`
	Debounce time.Duration `mapstructure:"debounce" validate:"gte=0"`
}

// Parts splits Config so each module can depend on its own section.
type Parts struct {
	fx.Out

	Log     log.Config
	Compile CompileConfig
	Trace   otel.Config
}

func (c Config) Parts() Parts {
	return Parts{Log: c.Log, Compile: c.Compile, Trace: c.Trace}
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("compile.services", DefaultServices)
	v.SetDefault("compile.format", "text")
	v.SetDefault("compile.debounce", "200ms")
	v.SetDefault("trace.exporter", otel.ExporterNone)
	v.SetDefault("trace.service_name", "")
	v.SetDefault("trace.endpoint", "")
	v.SetDefault("trace.insecure", false)
}

// Load reads path (optional when it is DefaultFile) and ULTRAWIRE_* environment
// overrides, then validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	optional := path == "" || path == DefaultFile
	if path == "" {
		path = DefaultFile
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		// A missing explicit file is reported as a plain fs error, not ConfigFileNotFoundError.
		if !optional || !(errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)) {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
