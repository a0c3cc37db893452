// Package config holds application configuration, populated from an
// optional TOML file with command-line flags taking precedence.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

const (
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
	BackendOllama = "ollama"
)

// Config holds application configuration.
type Config struct {
	Backend   string `toml:"backend"`
	Model     string `toml:"model"`
	SessionID string `toml:"session_id"`
	UserID    string `toml:"user_id"`
	Debug     bool   `toml:"debug"`

	// Addr, when set, serves the HTTP API instead of the REPL.
	Addr string `toml:"addr"`

	// RulesFile optionally overrides the compiled-in classifier rules.
	RulesFile string `toml:"rules_file"`

	// DBPath is the sqlite database location.
	DBPath string `toml:"db_path"`

	// LogDir is where logs, traces, and metrics are written.
	LogDir string `toml:"log_dir"`
}

// Defaults returns the baseline configuration before file and flag
// overrides.
func Defaults() Config {
	return Config{
		Backend: BackendOllama,
		UserID:  "local",
		DBPath:  "fincalc.db",
		LogDir:  "logs",
	}
}

// LoadFile merges the TOML file at path over cfg. Keys absent from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the backend selection.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOpenAI, BackendGemini, BackendOllama:
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want %s|%s|%s)",
			c.Backend, BackendOpenAI, BackendGemini, BackendOllama)
	}
}
