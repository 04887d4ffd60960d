package config

// LoggingConfig configures the slog handler behind every command
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stdout, stderr or file; file needs FilePath
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// IncludeCaller adds the source file and line to each record
	IncludeCaller bool `mapstructure:"include_caller"`
}

// ToFile reports whether records go to FilePath
func (l LoggingConfig) ToFile() bool {
	return l.Output == "file"
}
