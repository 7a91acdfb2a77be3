package otel

import "strings"

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config selects where compiler spans are exported.
type Config struct {
	ServiceName string `mapstructure:"service_name"`
	Exporter    string `mapstructure:"exporter" validate:"omitempty,oneof=none stdout otlp"`
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
}

func (c Config) exporter() string {
	e := strings.ToLower(strings.TrimSpace(c.Exporter))
	if e == "" {
		return ExporterNone
	}
	return e
}
