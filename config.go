package rasdae

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ============================================================
// File configuration
// ============================================================
//
// Priority: built-in defaults -> YAML file -> command-line flags.
//
//	model:
//	  use_michaelis_menten_for_all: true
//	  enable_feedback: false
//	output:
//	  format: text
//	log:
//	  level: warn
//	  format: console

// Settings is everything a binary can be configured with.
type Settings struct {
	Model  Config       `yaml:"model"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

type OutputConfig struct {
	// text, latex or json
	Format string `yaml:"format"`
}

type LogConfig struct {
	// debug, info, warn, error
	Level string `yaml:"level"`
	// console or json
	Format string `yaml:"format"`
}

func DefaultSettings() Settings {
	return Settings{
		Model:  DefaultConfig(),
		Output: OutputConfig{Format: string(FormatText)},
		Log:    LogConfig{Level: "warn", Format: "console"},
	}
}

// LoadSettings reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	if _, err := ParseFormat(s.Output.Format); err != nil {
		return err
	}
	switch s.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", s.Log.Level)
	}
	switch s.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", s.Log.Format)
	}
	return nil
}
