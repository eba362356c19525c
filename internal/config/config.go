// Package config loads the server's YAML configuration file, falling
// back to sensible defaults when the file is absent -- the same
// contract the teacher's login-server config uses.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the minigolf server.
type Server struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error (default: info)

	// Tick loop. TickIntervalMS is a test hook: production deployments
	// should leave it at zero and take the 200ms default.
	TickIntervalMS int `yaml:"tick_interval_ms"`
	PingIntervalS  int `yaml:"ping_interval_s"`
	PongTimeoutS   int `yaml:"pong_timeout_s"`
	ReadTimeoutS   int `yaml:"read_timeout_s"`

	// EventLog is optional: a zero-value (Enabled: false) EventLog
	// config runs the server with a no-op audit sink.
	EventLog EventLogConfig `yaml:"event_log"`
}

// EventLogConfig holds the optional Postgres audit sink's connection
// parameters. It is never consulted by the tick loop's own state --
// see internal/eventlog.
type EventLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// Default returns a Server config with sensible defaults.
func Default() Server {
	return Server{
		BindAddress:    "0.0.0.0",
		Port:           4242,
		LogLevel:       "info",
		TickIntervalMS: 200,
		PingIntervalS:  5,
		PongTimeoutS:   5,
		ReadTimeoutS:   10,
	}
}

// Load reads a YAML config file at path, returning defaults unchanged
// if the file doesn't exist.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}
