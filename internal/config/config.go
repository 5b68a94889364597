// Package config handles tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Import  ImportConfig  `yaml:"import"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds container writing settings.
type ExportConfig struct {
	Codec string `yaml:"codec"` // none, lz4 or zstd
}

// ImportConfig holds merge behavior settings.
type ImportConfig struct {
	// Overwrite replaces a model whose id is already taken instead of
	// refusing the import.
	Overwrite bool `yaml:"overwrite"`
}

// OutputConfig holds output path settings.
type OutputConfig struct {
	// Dir receives exported containers and texture dumps when a
	// command does not name a destination.
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Codec: "zstd",
		},
		Import: ImportConfig{
			Overwrite: false,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
