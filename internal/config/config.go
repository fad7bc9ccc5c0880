// Package config loads the optional client config file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/scrylang/scry/internal/paths"
)

// Config is the client-side configuration. Everything server-side lives with
// the server.
type Config struct {
	// Socket overrides the default server socket path.
	Socket string `toml:"socket"`
	// Color is the color policy: "auto", "always" or "never".
	Color string `toml:"color"`
	// EventLog, when set, appends one JSON line per invocation to the
	// named file.
	EventLog string `toml:"event_log"`
}

// Load reads the config file at the default path. A missing file yields
// defaults, not an error.
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom reads and parses a config file at the given path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{Color: "auto"}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Color {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", cfg.Color)
	}
}

// SocketPath returns the configured socket path, falling back to the XDG
// default.
func (c *Config) SocketPath() string {
	if c.Socket != "" {
		return c.Socket
	}
	return paths.SocketPath()
}
