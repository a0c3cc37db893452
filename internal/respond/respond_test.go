package respond

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/1adityakadam/financial-calculators/internal/classify"
	"github.com/1adityakadam/financial-calculators/internal/rules"
	"github.com/1adityakadam/financial-calculators/internal/session"
)

// stubGenerator returns a canned string or error and records the system
// prompt it was handed.
type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Name() string { return "stub" }

func (s *stubGenerator) Generate(_ context.Context, systemPrompt string, _ []session.Message) (string, error) {
	s.prompt = systemPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestComposeStaticCategories(t *testing.T) {
	c := NewComposer(rules.Default(), nil, nil)
	tests := []struct {
		name     string
		category classify.Category
		contains string
	}{
		{"greeting", classify.CategoryGreeting, "financial calculator assistant"},
		{"farewell", classify.CategoryFarewell, "Goodbye"},
		{"privacy", classify.CategoryPrivacy, "/clear-history"},
		{"abuse", classify.CategoryAbuse, "respectful"},
		{"fallback", classify.CategoryFallback, "outside what I can help with"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := c.Compose(context.Background(), classify.Result{Category: tt.category}, nil)
			if !strings.Contains(reply.Text, tt.contains) {
				t.Errorf("reply %q does not contain %q", reply.Text, tt.contains)
			}
			if reply.Generated {
				t.Error("static reply marked as generated")
			}
		})
	}
}

func TestFallbackListsTopicAreas(t *testing.T) {
	c := NewComposer(rules.Default(), nil, nil)
	reply := c.Compose(context.Background(), classify.Result{Category: classify.CategoryFallback}, nil)
	for _, topic := range []string{
		"Investment calculations",
		"Tax planning",
		"Retirement planning",
		"Loan and mortgage",
		"General financial advice",
	} {
		if !strings.Contains(reply.Text, topic) {
			t.Errorf("fallback reply missing topic %q", topic)
		}
	}
}

func TestComposeBroadTopic(t *testing.T) {
	c := NewComposer(rules.Default(), nil, nil)
	reply := c.Compose(context.Background(), classify.Result{
		Category: classify.CategoryBroadTopic,
		Topic:    "retirement",
	}, nil)
	if !strings.Contains(reply.Text, "25x") {
		t.Errorf("retirement overview = %q, want mention of the 25x rule", reply.Text)
	}

	unknown := c.Compose(context.Background(), classify.Result{
		Category: classify.CategoryBroadTopic,
		Topic:    "astrology",
	}, nil)
	if unknown.Text != fallbackText {
		t.Errorf("unknown topic reply = %q, want fallback", unknown.Text)
	}
}

func TestComposeKeywordCombinesGroups(t *testing.T) {
	c := NewComposer(rules.Default(), nil, nil)
	reply := c.Compose(context.Background(), classify.Result{
		Category: classify.CategoryKeyword,
		Groups:   []string{"precious-metals", "cryptocurrency"},
	}, nil)
	if !strings.Contains(reply.Text, "inflation hedges") || !strings.Contains(reply.Text, "high-volatility") {
		t.Errorf("combined reply missing one of the group overviews: %q", reply.Text)
	}
}

func TestComposeKeywordPromptUsesDisplayNames(t *testing.T) {
	gen := &stubGenerator{text: "Consider position sizing."}
	c := NewComposer(rules.Default(), gen, nil)
	reply := c.Compose(context.Background(), classify.Result{
		Category: classify.CategoryKeyword,
		Groups:   []string{"precious-metals"},
	}, nil)
	if !reply.Generated {
		t.Error("reply not marked generated on model success")
	}
	if !strings.Contains(reply.Text, "Consider position sizing.") {
		t.Errorf("reply %q missing generated text", reply.Text)
	}
	if !strings.Contains(gen.prompt, "precious metals") {
		t.Errorf("system prompt %q does not name the group display name", gen.prompt)
	}
}

func TestComposeCalculator(t *testing.T) {
	t.Run("known calculator", func(t *testing.T) {
		gen := &stubGenerator{text: "It projects monthly investing."}
		c := NewComposer(rules.Default(), gen, nil)
		reply := c.Compose(context.Background(), classify.Result{
			Category:   classify.CategoryCalculator,
			Calculator: "sip",
		}, nil)
		if !strings.Contains(reply.Text, "Pro tip:") || !strings.Contains(reply.Text, "SIP Calculator") {
			t.Errorf("reply %q missing the calculator pointer", reply.Text)
		}
		if !reply.Generated {
			t.Error("reply not marked generated")
		}
	})
	t.Run("unknown calculator falls back", func(t *testing.T) {
		c := NewComposer(rules.Default(), nil, nil)
		reply := c.Compose(context.Background(), classify.Result{
			Category:   classify.CategoryCalculator,
			Calculator: "astrology",
		}, nil)
		if reply.Text != fallbackText {
			t.Errorf("reply = %q, want fallback", reply.Text)
		}
	})
}

func TestGeneratorFailureKeepsStaticText(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connect: refused")}
	c := NewComposer(rules.Default(), gen, nil)
	reply := c.Compose(context.Background(), classify.Result{
		Category: classify.CategoryKeyword,
		Groups:   []string{"precious-metals"},
	}, nil)
	if reply.Generated {
		t.Error("failed generation marked as generated")
	}
	if !strings.Contains(reply.Text, "inflation hedges") {
		t.Errorf("reply %q lost the static overview", reply.Text)
	}
	if !strings.Contains(reply.Text, apology) {
		t.Errorf("reply %q missing the apology", reply.Text)
	}
}

func TestNilGeneratorStaysStatic(t *testing.T) {
	c := NewComposer(rules.Default(), nil, nil)
	reply := c.Compose(context.Background(), classify.Result{
		Category:   classify.CategoryCalculator,
		Calculator: "fd",
	}, nil)
	if reply.Generated {
		t.Error("reply marked generated with no generator configured")
	}
	if !strings.Contains(reply.Text, "Fixed Deposit Calculator") {
		t.Errorf("reply %q missing calculator name", reply.Text)
	}
}
