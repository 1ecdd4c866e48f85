package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file. Command line flags take
// precedence over it.
type Config struct {
	LogLevel       string   `yaml:"log_level"`
	Parallel       bool     `yaml:"parallel"`
	Trace          bool     `yaml:"trace"`
	MaxChaseRounds int      `yaml:"max_chase_rounds"`
	Queries        []string `yaml:"queries"`
}

func defaultConfig() Config {
	return Config{LogLevel: "warn"}
}

// LoadConfig reads a config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	for _, q := range cfg.Queries {
		if _, ok := queries[q]; !ok {
			return cfg, fmt.Errorf("config %s: unknown query %q", path, q)
		}
	}
	return cfg, nil
}

func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
