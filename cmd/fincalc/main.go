package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1adityakadam/financial-calculators/internal/api"
	"github.com/1adityakadam/financial-calculators/internal/assistant"
	"github.com/1adityakadam/financial-calculators/internal/config"
)

func main() {
	defaults := config.Defaults()

	var (
		configFile = flag.String("config", "", "Path to TOML config file")
		backend    = flag.String("backend", "", "LLM backend (openai|gemini|ollama)")
		model      = flag.String("model", "", "Model name override for the selected backend")
		sessionID  = flag.String("session-id", "", "Load existing session by ID")
		userID     = flag.String("user-id", "", "User identifier for history scoping")
		addr       = flag.String("addr", "", "Serve the HTTP API on this address instead of the REPL")
		rulesFile  = flag.String("rules", "", "Path to YAML classifier rules override")
		dbPath     = flag.String("db", "", "Path to the sqlite database")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg := defaults
	if *configFile != "" {
		if err := config.LoadFile(*configFile, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags win over the config file.
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *sessionID != "" {
		cfg.SessionID = *sessionID
	}
	if *userID != "" {
		cfg.UserID = *userID
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *rulesFile != "" {
		cfg.RulesFile = *rulesFile
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bot, err := assistant.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize assistant: %v\n", err)
		os.Exit(1)
	}

	if cfg.Addr != "" {
		server := api.NewServer(cfg.Addr, bot, nil)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := bot.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
