package build

// BuildMode selects development or production defaults.
type BuildMode string

const (
	ModeDevelopment BuildMode = "development"
	ModeProduction  BuildMode = "production"
)

func IsDevelopment() bool {
	return Mode == ModeDevelopment
}

func IsProduction() bool {
	return Mode == ModeProduction
}
