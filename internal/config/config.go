package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when Load gets no path.
const EnvConfigPath = "VOXEL_CONFIG"

// File is the YAML configuration document.
type File struct {
	World       WorldSettings `yaml:"world"`
	Workers     int           `yaml:"workers"`
	MetricsAddr string        `yaml:"metrics_addr"`
	Window      WindowConfig  `yaml:"window"`
}

type WindowConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	VSync     bool `yaml:"vsync"`
	TargetFPS int  `yaml:"target_fps"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		World:   DefaultWorldSettings(),
		Workers: runtime.NumCPU(),
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			VSync:     true,
			TargetFPS: 0,
		},
	}
}

// Load reads a YAML configuration file over the defaults. With an empty path
// it falls back to $VOXEL_CONFIG, and with neither it returns the defaults.
// Keys missing from the file keep their default values.
func Load(path string) (*File, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg, nil
}
