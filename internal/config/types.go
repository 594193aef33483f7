package config

import "time"

// DefaultEndpoint is the fixed remote execution endpoint.
const DefaultEndpoint = "https://based.lol/run.ty"

// Config represents the complete ty configuration.
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	LogLevel string        `yaml:"log_level"`
	Client   ClientConfig  `yaml:"client,omitempty"`
	History  HistoryConfig `yaml:"history,omitempty"`
	Relay    RelayConfig   `yaml:"relay,omitempty"`
}

// ClientConfig defines outbound HTTP settings.
type ClientConfig struct {
	// Timeout of 0 keeps the transport defaults.
	Timeout time.Duration `yaml:"timeout"`
}

// HistoryConfig defines the opt-in local run journal.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	// Keep bounds how many runs Prune retains.
	Keep int `yaml:"keep"`
}

// RelayConfig defines the local forwarding server.
type RelayConfig struct {
	Listen string `yaml:"listen"`
}
