package assistant

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/1adityakadam/financial-calculators/internal/classify"
	"github.com/1adityakadam/financial-calculators/internal/respond"
)

func categoryAttr(c classify.Category) attribute.KeyValue {
	return attribute.String("category", string(c))
}

// Run drives the interactive terminal loop until the user quits.
func (a *Assistant) Run() error {
	defer a.Close()

	fmt.Println("=== Finance Calculator Assistant ===")
	fmt.Printf("Session: %s\n", a.Session())
	fmt.Printf("Backend: %s\n", a.cfg.Backend)
	fmt.Println("Type /help for commands, /quit to exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			quit, err := a.handleCommand(ctx, input)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				a.logger.Error("command error", "error", err)
			}
			if quit {
				break
			}
			continue
		}

		turn, err := a.HandleMessage(ctx, input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			a.logger.Error("failed to handle message", "error", err)
			continue
		}
		fmt.Printf("Bot: %s\n\n", turn.Reply)
	}

	fmt.Println("Goodbye!")
	return nil
}

// handleCommand handles slash commands; returns true when the loop
// should exit.
func (a *Assistant) handleCommand(ctx context.Context, cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return false, nil
	}

	switch parts[0] {
	case "/quit", "/exit":
		return true, nil

	case "/new-session":
		id := a.NewSession()
		fmt.Println("Started new session:", id)
		return false, nil

	case "/clear-history":
		if err := a.ClearHistory(ctx, a.cfg.UserID); err != nil {
			return false, err
		}
		fmt.Println("History cleared.")
		return false, nil

	case "/switch":
		if len(parts) < 2 {
			return false, fmt.Errorf("usage: /switch <backend> (openai|gemini|ollama)")
		}
		if err := a.SwitchBackend(parts[1]); err != nil {
			return false, err
		}
		fmt.Printf("Switched to %s backend\n", parts[1])
		return false, nil

	case "/help":
		fmt.Println("Available commands:")
		fmt.Println("  /quit, /exit        - Exit the assistant")
		fmt.Println("  /new-session        - Start a new chat session")
		fmt.Println("  /clear-history      - Delete your stored chat history")
		fmt.Println("  /switch <backend>   - Switch LLM backend (openai|gemini|ollama)")
		fmt.Println("  /help               - Show this help message")
		return false, nil

	default:
		return false, nil
	}
}

// SwitchBackend swaps the hosted-model backend for subsequent turns.
func (a *Assistant) SwitchBackend(name string) error {
	cfg := a.cfg
	cfg.Backend = name
	if err := cfg.Validate(); err != nil {
		return err
	}
	gen, err := newGenerator(cfg, a.deps)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg.Backend = name
	a.session.Backend = name
	a.mu.Unlock()
	a.composer = respond.NewComposer(a.rules, gen, a.logger)
	a.logger.Info("switched backend", "backend", name)
	return nil
}
