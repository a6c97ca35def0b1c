package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/baxromumarov/jobsystem"
)

// demoConfig is the optional -config file.
//
//	log_level: debug
//	tick: 16ms
//	jobs:
//	  limit: 2
type demoConfig struct {
	LogLevel string           `yaml:"log_level"`
	Tick     string           `yaml:"tick"`
	Jobs     jobsystem.Config `yaml:"jobs"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		LogLevel: "info",
		Tick:     "16ms",
		Jobs:     jobsystem.DefaultConfig(),
	}
}

func loadDemoConfig(path string) (demoConfig, error) {
	cfg := defaultDemoConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Jobs.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c demoConfig) tick() (time.Duration, error) {
	d, err := time.ParseDuration(c.Tick)
	if err != nil {
		return 0, fmt.Errorf("invalid tick %q: %w", c.Tick, err)
	}
	return d, nil
}

func (c demoConfig) logger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h), nil
}
