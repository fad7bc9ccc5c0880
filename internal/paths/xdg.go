// Package paths resolves the XDG directories scry uses for its config file
// and the server socket.
package paths

import (
	"os"
	"path/filepath"
)

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

func xdgDir(envVar, fallbackSuffix string) string {
	if v := os.Getenv(envVar); v != "" {
		return filepath.Join(v, "scry")
	}
	return filepath.Join(homeDir(), fallbackSuffix, "scry")
}

// ConfigDir returns the scry config directory ($XDG_CONFIG_HOME/scry).
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the scry state directory ($XDG_STATE_HOME/scry).
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// RuntimeDir returns the directory holding the server socket.
// Falls back to $XDG_STATE_HOME/scry if XDG_RUNTIME_DIR is unset.
func RuntimeDir() string {
	if v := os.Getenv("XDG_RUNTIME_DIR"); v != "" {
		return filepath.Join(v, "scry")
	}
	return StateDir()
}

// ConfigFile returns the path to config.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// SocketPath returns the default path of the server Unix socket.
func SocketPath() string {
	return filepath.Join(RuntimeDir(), "server.sock")
}

// EnsureDir creates a directory and parents if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0700)
}
