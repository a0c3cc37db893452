// Package respond turns a classification result into the assistant's
// reply. Static categories come from a per-category template table;
// generative categories additionally defer to a hosted-model Generator
// with a category-specific system prompt, degrading to the static text
// plus an apology when the model call fails.
package respond

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1adityakadam/financial-calculators/internal/backend"
	"github.com/1adityakadam/financial-calculators/internal/calc"
	"github.com/1adityakadam/financial-calculators/internal/classify"
	"github.com/1adityakadam/financial-calculators/internal/rules"
	"github.com/1adityakadam/financial-calculators/internal/session"
)

// Reply is one assistant response.
type Reply struct {
	Text string
	// Generated reports whether any part of Text came from the hosted
	// model rather than the template table.
	Generated bool
}

// apology is surfaced when the hosted model fails; the static part of the
// reply is kept and the user's message stays in history.
const apology = "I'm sorry, I couldn't fetch a detailed answer right now. Please try again in a moment."

// fallbackText lists the supported topic areas, mirroring the welcome
// copy of the assistant.
const fallbackText = "I'm a financial assistant, so that's outside what I can help with. " +
	"I can help you with:\n" +
	"- Investment calculations and strategies\n" +
	"- Tax planning and optimization\n" +
	"- Retirement planning (FIRE, pension)\n" +
	"- Loan and mortgage calculations\n" +
	"- General financial advice\n" +
	"What would you like to know?"

var staticReplies = map[classify.Category]string{
	classify.CategoryPrivacy: "Your messages stay in your own session history and are only used to answer " +
		"your questions. You can clear your history at any time with /clear-history, and nothing is shared " +
		"with other users.",
	classify.CategoryGreeting: "Hi! I'm your financial calculator assistant. I can help you with SIP " +
		"investments, tax calculations, retirement planning, loans, and more. What would you like to know?",
	classify.CategoryFarewell: "Goodbye! Come back any time you have a finance question.",
	classify.CategoryAbuse: "I'd rather keep this conversation respectful. I'm happy to help with any " +
		"finance question when you're ready.",
	classify.CategoryFallback: fallbackText,
}

var topicOverviews = map[string]string{
	"investment": "Investing is about putting money to work over time: regular SIP contributions, lump-sum " +
		"deposits, and diversified funds all compound returns. Try the SIP, Mutual Fund, or CAGR calculators " +
		"to compare options for your horizon.",
	"retirement": "Retirement planning means building a corpus that can replace your income. The FIRE rule " +
		"of thumb targets 25x your annual expenses; the FIRE calculator works out the monthly savings needed " +
		"to get there.",
	"tax": "Tax planning is about knowing your brackets and using exemptions well. The Tax calculator " +
		"estimates your federal and state liability, and the HRA calculator computes your rent exemption.",
	"loan": "Loans and mortgages are priced by an EMI that splits each payment between interest and " +
		"principal. The Loan and Mortgage calculators show your monthly payment and how much interest you'll " +
		"pay over the full term.",
	"advice": "Good financial health starts with a budget, an emergency fund, and steady investing. Tell me " +
		"about a goal, like retirement, a home, or a target corpus, and I'll point you at the right calculator.",
}

var groupOverviews = map[string]string{
	"precious-metals": "Precious metals like gold and silver are classic inflation hedges, though they " +
		"produce no income and their prices can stay flat for years.",
	"rare-earth-metals": "Rare-earth metals ride industrial demand from electronics and batteries; retail " +
		"exposure usually comes through mining stocks or ETFs rather than the metals themselves.",
	"gemstones": "Gemstones are illiquid collectibles: valuations are subjective, spreads are wide, and " +
		"they suit enthusiasts more than portfolios.",
	"stock-instruments": "Stocks and index funds are the growth engine of most portfolios; diversification " +
		"and a long horizon matter more than picking single names.",
	"real-estate": "Real estate offers rental income plus appreciation, at the cost of high entry prices " +
		"and low liquidity; REITs give similar exposure in a tradable form.",
	"cryptocurrency": "Cryptocurrency is a high-volatility speculative asset; position sizes should be " +
		"small enough that a full loss wouldn't change your plans.",
	"general-finance": "Solid finances rest on a budget, an emergency fund of three to six months of " +
		"expenses, and consistent investing into diversified assets.",
}

// financeSystemPrompt is the base instruction sent to the hosted model.
const financeSystemPrompt = `You are a helpful financial advisor assistant specializing in investment calculators and financial planning. You can help users with:

1. SIP (Systematic Investment Plan) calculations and strategies
2. Fixed Deposit (FD) and Recurring Deposit (RD) planning
3. CAGR (Compound Annual Growth Rate) understanding
4. Tax calculations and optimization
5. Retirement planning (NPS, FIRE method)
6. Mutual fund investments
7. HRA and tax benefits
8. Goal-based financial planning

Provide accurate, helpful advice while being clear that this is for educational purposes and users should consult certified financial advisors for personalized advice. Keep responses concise and practical.

Focus on US financial markets and investment options when discussing SIP and investment strategies.`

// Composer builds replies from classification results.
type Composer struct {
	rules     *rules.RuleSet
	generator backend.Generator
	logger    *slog.Logger
}

// NewComposer returns a Composer. generator may be nil, in which case all
// replies are fully static.
func NewComposer(rs *rules.RuleSet, generator backend.Generator, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{rules: rs, generator: generator, logger: logger}
}

// Compose produces the reply for a classified message. history is the
// conversation including the current user turn, passed through to the
// hosted model for generative categories.
func (c *Composer) Compose(ctx context.Context, result classify.Result, history []session.Message) Reply {
	switch result.Category {
	case classify.CategoryBroadTopic:
		if text, ok := topicOverviews[result.Topic]; ok {
			return Reply{Text: text}
		}
		return Reply{Text: fallbackText}

	case classify.CategoryKeyword:
		return c.composeKeyword(ctx, result.Groups, history)

	case classify.CategoryCalculator:
		return c.composeCalculator(ctx, result.Calculator, history)

	default:
		if text, ok := staticReplies[result.Category]; ok {
			return Reply{Text: text}
		}
		return Reply{Text: fallbackText}
	}
}

// composeKeyword emits one combined overview covering every matched
// group, rather than one reply per group.
func (c *Composer) composeKeyword(ctx context.Context, groups []string, history []session.Message) Reply {
	var parts []string
	for _, key := range groups {
		if text, ok := groupOverviews[key]; ok {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return Reply{Text: fallbackText}
	}
	static := strings.Join(parts, "\n\n")

	prompt := financeSystemPrompt + "\n\nThe user is asking about: " +
		strings.Join(c.displayNames(groups), ", ") +
		". Add two or three sentences of practical guidance on this topic."
	return c.withGenerated(ctx, static, prompt, history)
}

// composeCalculator emits the pro-tip pointer for the named calculator
// and asks the hosted model for a detailed explanation.
func (c *Composer) composeCalculator(ctx context.Context, key string, history []session.Message) Reply {
	info, ok := calc.Lookup(key)
	if !ok {
		return Reply{Text: fallbackText}
	}
	static := fmt.Sprintf("Pro tip: the %s is what you want here. %s", info.Name, info.Summary)

	prompt := financeSystemPrompt + fmt.Sprintf(
		"\n\nThe user asked about the %s. Explain in a short paragraph what it computes, what inputs it needs, and when to use it.",
		info.Name)
	return c.withGenerated(ctx, static, prompt, history)
}

// withGenerated appends hosted-model prose to the static text when a
// generator is configured. Failures degrade to the static text plus an
// apology; the turn never errors.
func (c *Composer) withGenerated(ctx context.Context, static, systemPrompt string, history []session.Message) Reply {
	if c.generator == nil {
		return Reply{Text: static}
	}
	generated, err := c.generator.Generate(ctx, systemPrompt, history)
	if err != nil {
		c.logger.Warn("generation failed", "backend", c.generator.Name(), "error", err)
		return Reply{Text: static + "\n\n" + apology}
	}
	return Reply{Text: static + "\n\n" + generated, Generated: true}
}

func (c *Composer) displayNames(groups []string) []string {
	names := make([]string, 0, len(groups))
	for _, key := range groups {
		display := key
		for _, kg := range c.rules.KeywordGroups {
			if kg.Key == key && kg.Display != "" {
				display = kg.Display
				break
			}
		}
		names = append(names, display)
	}
	return names
}
