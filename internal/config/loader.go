package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration. With no config file present the
// program behaves exactly like the bare dispatcher: fixed endpoint, transport
// default timeout, nothing persisted.
func Default() *Config {
	cfg := &Config{}
	return applyDefaults(cfg)
}

// Load reads and parses configuration from a file. A directory is accepted
// and resolved to config.yaml inside it.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	if info.IsDir() {
		absPath = filepath.Join(absPath, "config.yaml")
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("directory provided but config.yaml not found: %s", absPath)
		}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", absPath, err)
	}

	cfg = applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads the given path, or the discovered config file, or the
// built-in defaults when neither exists.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath != "" {
		return Load(configPath)
	}
	discovered, ok := DiscoverConfigFile()
	if !ok {
		return Default(), nil
	}
	return Load(discovered)
}

func applyDefaults(cfg *Config) *Config {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaultHistoryPath()
	}
	if cfg.History.Keep <= 0 {
		cfg.History.Keep = 200
	}
	if cfg.Relay.Listen == "" {
		cfg.Relay.Listen = "127.0.0.1:8737"
	}
	return cfg
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must be http or https, got %q", cfg.Endpoint)
	}
	if cfg.Client.Timeout < 0 {
		return fmt.Errorf("client.timeout must not be negative")
	}
	return nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ty-history.db"
	}
	return filepath.Join(home, ".local", "share", "ty", "history.db")
}
