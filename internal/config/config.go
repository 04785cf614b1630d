// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"` // bearer key for the API; empty disables the guard
}

// StrategyConfig selects how subscription status is queried.
type StrategyConfig struct {
	Mode string `yaml:"mode"` // mock | uaclient

	// Executable is the argv prefix of the ua client, so an interpreter
	// can be given alongside the script (e.g. ["python3", "/usr/bin/ua"]).
	Executable []string `yaml:"executable"`

	// ScaleFactor shortens the artificial delay of the mock strategy:
	// delay = 1s / scale_factor.
	ScaleFactor int `yaml:"scale_factor"`
}

// MonitorConfig drives the optional background status poller.
type MonitorConfig struct {
	Token    string        `yaml:"token"`
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Strategy StrategyConfig `yaml:"strategy"`
	Monitor  MonitorConfig  `yaml:"monitor"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Strategy.Mode == "" {
		cfg.Strategy.Mode = "mock"
	}
	if len(cfg.Strategy.Executable) == 0 {
		cfg.Strategy.Executable = []string{"ubuntu-advantage"}
	}
	if cfg.Strategy.ScaleFactor <= 0 {
		cfg.Strategy.ScaleFactor = 1
	}
	if cfg.Monitor.Interval <= 0 {
		cfg.Monitor.Interval = time.Hour
	}

	// Minimal validation
	if cfg.Strategy.Mode != "mock" && cfg.Strategy.Mode != "uaclient" {
		return nil, errors.New(`strategy.mode must be "mock" or "uaclient"`)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
