package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v, want nil", err)
	}
	if cfg.Backend != BackendOllama {
		t.Errorf("default backend = %q, want %q", cfg.Backend, BackendOllama)
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
backend = "openai"
model = "gpt-3.5-turbo"
addr = ":8080"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Backend != BackendOpenAI || cfg.Model != "gpt-3.5-turbo" || cfg.Addr != ":8080" {
		t.Errorf("merged config = %+v, want file values applied", cfg)
	}
	// Keys absent from the file keep their defaults.
	if cfg.DBPath != "fincalc.db" || cfg.UserID != "local" {
		t.Errorf("merged config = %+v, want defaults kept for absent keys", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Defaults()
	if err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"), &cfg); err == nil {
		t.Error("LoadFile() on missing file succeeded, want error")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Defaults()
	cfg.Backend = "mainframe"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted unknown backend")
	}
}
