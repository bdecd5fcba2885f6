package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config controls a stress run. It can be loaded from a YAML file and then
// overridden by flags.
type Config struct {
	Duration       time.Duration `yaml:"duration"`
	Entities       int           `yaml:"entities"`
	MaxComponents  int           `yaml:"max_components"`
	ChurnPerFrame  int           `yaml:"churn_per_frame"`
	Seed           uint64        `yaml:"seed"`
	GCPauseMetrics bool          `yaml:"gc_pause_metrics"`
	LogLevel       string        `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Duration:      10 * time.Second,
		Entities:      10000,
		MaxComponents: 5,
		ChurnPerFrame: 100,
		Seed:          1,
		LogLevel:      "info",
	}
}

// loadConfig reads path over the defaults. Keys missing from the file keep
// their default values.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, eris.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Duration <= 0:
		return eris.Errorf("duration must be positive, got %s", c.Duration)
	case c.Entities < 0:
		return eris.Errorf("entities must not be negative, got %d", c.Entities)
	case c.MaxComponents < 1:
		return eris.Errorf("max_components must be at least 1, got %d", c.MaxComponents)
	case c.ChurnPerFrame < 0:
		return eris.Errorf("churn_per_frame must not be negative, got %d", c.ChurnPerFrame)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrap(err, "log_level")
	}
	return nil
}
