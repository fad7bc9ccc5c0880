package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Color != "auto" {
		t.Fatalf("cfg.Color = %q, want %q", cfg.Color, "auto")
	}
	if cfg.Socket != "" {
		t.Fatalf("cfg.Socket = %q, want empty", cfg.Socket)
	}
}

func TestLoadFromParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "socket = \"/tmp/scry.sock\"\ncolor = \"never\"\nevent_log = \"/tmp/scry.log\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Socket != "/tmp/scry.sock" {
		t.Fatalf("cfg.Socket = %q", cfg.Socket)
	}
	if cfg.Color != "never" {
		t.Fatalf("cfg.Color = %q", cfg.Color)
	}
	if cfg.EventLog != "/tmp/scry.log" {
		t.Fatalf("cfg.EventLog = %q", cfg.EventLog)
	}
	if got := cfg.SocketPath(); got != "/tmp/scry.sock" {
		t.Fatalf("SocketPath() = %q", got)
	}
}

func TestLoadFromRejectsBadColorPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("color = \"sometimes\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() error = nil, want error")
	}
}
