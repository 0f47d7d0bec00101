// Package config defines the agent configuration. Defaults are compiled in
// (see cmd/agent/config.yaml) and can be replaced wholesale with -config.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the host paths the agent works against. Timing knobs are
// flags, not config, matching how the agent is deployed.
type Config struct {
	// SharedRoot is the filesystem location shared with the consuming
	// agent process.
	SharedRoot string `yaml:"shared_root"`
	// VideoDir is scanned for video* nodes during correlation.
	VideoDir string `yaml:"video_dir"`
}

// BufferDir is where snapshot files are written:
// <shared_root>/.peripherals/usb/buffer.
func (c Config) BufferDir() string {
	return filepath.Join(c.SharedRoot, ".peripherals", "usb", "buffer")
}

// Parse unmarshals and validates a YAML configuration.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if c.SharedRoot == "" {
		return Config{}, fmt.Errorf("config is missing shared_root")
	}
	if c.VideoDir == "" {
		return Config{}, fmt.Errorf("config is missing video_dir")
	}
	return c, nil
}

// Load reads the configuration from path, or falls back to the built-in
// defaults when path is empty.
func Load(path string, defaults []byte) (Config, error) {
	data := defaults
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	return Parse(data)
}
