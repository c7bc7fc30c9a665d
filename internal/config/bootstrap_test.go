package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureUserConfigSeedsFromDefault(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	if err := os.WriteFile(def, []byte("app:\n  port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dataDir := t.TempDir()
	path, err := EnsureUserConfig(dataDir, def)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 9999 {
		t.Errorf("port = %d", cfg.App.Port)
	}

	// second call leaves the existing user config alone
	if err := os.WriteFile(path, []byte("app:\n  port: 1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dataDir, def); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 1234 {
		t.Errorf("user config overwritten, port = %d", cfg.App.Port)
	}
}

func TestEnsureUserConfigBuiltInFallback(t *testing.T) {
	dataDir := t.TempDir()
	path, err := EnsureUserConfig(dataDir, filepath.Join(dataDir, "missing.yml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 8080 || cfg.Database.Driver != "sqlite" {
		t.Errorf("built-in default: %+v", cfg)
	}
}
