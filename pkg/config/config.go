// Package config provides configuration loading and management.
package config

import (
	"os"

	"github.com/user/mcap2video/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for mcap2video.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`
	Topic      string `yaml:"topic"`

	// Encoding
	Quality int `yaml:"quality"`

	// Memory check
	OverheadBytes uint64 `yaml:"overhead_bytes"`
	AssumeYes     bool   `yaml:"assume_yes"`

	// Reporting
	SummaryPath string `yaml:"summary"`
	LogLevel    string `yaml:"log_level"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputPath: "output.mp4",

		Quality: 90,

		OverheadBytes: 64 << 20,

		LogLevel: "info",

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the
// defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Topic:      c.Topic,
		OutputPath: c.OutputPath,
	}
}
