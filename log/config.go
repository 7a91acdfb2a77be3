package log

// Config selects the minimum log level.
type Config struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error fatal"`
}
