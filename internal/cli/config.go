package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ClientConfig holds ledgerctl configuration.
type ClientConfig struct {
	API  APIConfig  `toml:"api"`
	Sync SyncConfig `toml:"sync"`
}

// APIConfig holds the ledger API location.
type APIConfig struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// SyncConfig tunes the local sync facade.
type SyncConfig struct {
	QueueSize    int      `toml:"queue_size"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a string such as "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText writes the duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultClientConfig returns the default configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: Duration{15 * time.Second},
		},
		Sync: SyncConfig{
			QueueSize:    256,
			WriteTimeout: Duration{10 * time.Second},
		},
	}
}

// DefaultConfigPath returns the XDG-compliant config file path.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smartspend", "ledgerctl.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "smartspend", "ledgerctl.toml")
}

// LoadClientConfig reads path, returning defaults if it doesn't exist.
// SMARTSPEND_API_URL overrides the configured base URL.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if url := os.Getenv("SMARTSPEND_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	return cfg, nil
}

// SaveClientConfig writes cfg to path, creating the directory if needed.
func SaveClientConfig(path string, cfg ClientConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
