package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		checkFn func(t *testing.T, cfg *Config)
	}{
		{
			name: "minimal valid config",
			yaml: `
endpoint: https://example.com/run.ty
client:
  timeout: 5s
`,
			wantErr: false,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Endpoint != "https://example.com/run.ty" {
					t.Error("endpoint not parsed")
				}
				if cfg.Client.Timeout != 5*time.Second {
					t.Error("client.timeout not parsed")
				}
				// Check defaults applied
				if cfg.History.Keep != 200 {
					t.Error("default history.keep not applied")
				}
				if cfg.Relay.Listen != "127.0.0.1:8737" {
					t.Error("default relay.listen not applied")
				}
			},
		},
		{
			name: "history opt-in",
			yaml: `
history:
  enabled: true
  path: ./runs.db
  keep: 50
`,
			wantErr: false,
			checkFn: func(t *testing.T, cfg *Config) {
				if !cfg.History.Enabled {
					t.Error("history.enabled not parsed")
				}
				if cfg.History.Path != "./runs.db" {
					t.Error("history.path not parsed")
				}
				if cfg.History.Keep != 50 {
					t.Error("history.keep not parsed")
				}
				if cfg.Endpoint != DefaultEndpoint {
					t.Error("default endpoint not applied")
				}
			},
		},
		{
			name:    "invalid endpoint scheme",
			yaml:    `endpoint: "ftp://based.lol/run.ty"`,
			wantErr: true,
		},
		{
			name:    "negative timeout rejected",
			yaml:    "client:\n  timeout: -1s\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "endpoint: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.checkFn != nil {
				tt.checkFn(t, cfg)
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load(dir) error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.Client.Timeout, "no explicit timeout beyond transport defaults")
	assert.False(t, cfg.History.Enabled, "nothing persisted by default")
	assert.NotEmpty(t, cfg.History.Path)
	assert.Equal(t, 200, cfg.History.Keep)
}

func TestLoadOrDefaultWithoutPath(t *testing.T) {
	// Point config discovery at an empty directory.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
}
