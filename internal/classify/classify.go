// Package classify implements the deterministic intent classifier for the
// finance assistant. A Router inspects one user message against a static
// rule set and returns exactly one response category; the decision is a
// pure function of the normalized message text and the rules, with no
// state carried between turns.
package classify

import (
	"github.com/1adityakadam/financial-calculators/internal/rules"
	"github.com/1adityakadam/financial-calculators/internal/textnorm"
)

// Category is the closed set of response classes the router can select.
type Category string

const (
	CategoryPrivacy    Category = "privacy"
	CategoryGreeting   Category = "greeting"
	CategoryFarewell   Category = "farewell"
	CategoryAbuse      Category = "abuse"
	CategoryBroadTopic Category = "broad_topic"
	CategoryKeyword    Category = "keyword_topic"
	CategoryCalculator Category = "calculator"
	CategoryFallback   Category = "fallback"
)

// Result is the outcome of classifying a single message. Exactly one
// category is set; the remaining fields carry the parameters extracted for
// that category and are empty otherwise.
type Result struct {
	Category Category

	// Topic is the broad-topic key when Category == CategoryBroadTopic.
	Topic string

	// Groups are the matched keyword-group keys, in rule order, when
	// Category == CategoryKeyword.
	Groups []string

	// Calculator is the registry key when Category == CategoryCalculator.
	Calculator string

	// MatchedTerm records which abusive term fired, for logging and tests.
	MatchedTerm string
}

// Router evaluates the rule matchers in a fixed priority order.
type Router struct {
	rules *rules.RuleSet
}

// NewRouter returns a Router over rs. The rule set is not copied; callers
// must not mutate it after construction.
func NewRouter(rs *rules.RuleSet) *Router {
	return &Router{rules: rs}
}

// Classify routes one message to its response category.
//
// Evaluation order, short-circuiting on first success:
// privacy guard, exact greeting, exact farewell, abuse (fuzzy),
// broad-topic phrase, calculator name, keyword groups, then the default
// fallback. Empty or whitespace-only input lands on the fallback; there is
// no error path.
func (r *Router) Classify(message string) Result {
	forms := textnorm.Normalize(message)
	if forms.Phrase == "" {
		return Result{Category: CategoryFallback}
	}

	if r.matchPhraseList(forms.Phrase, r.rules.PrivacyPhrases) {
		return Result{Category: CategoryPrivacy}
	}
	if matchWholeMessage(forms.Phrase, r.rules.Greetings) {
		return Result{Category: CategoryGreeting}
	}
	if matchWholeMessage(forms.Phrase, r.rules.Farewells) {
		return Result{Category: CategoryFarewell}
	}
	if term, ok := r.matchAbuse(forms.Dense); ok {
		return Result{Category: CategoryAbuse, MatchedTerm: term}
	}
	if topic, ok := r.matchBroadTopic(forms.Phrase); ok {
		return Result{Category: CategoryBroadTopic, Topic: topic}
	}
	if calc, ok := r.matchCalculator(forms.Phrase); ok {
		return Result{Category: CategoryCalculator, Calculator: calc}
	}
	if groups := r.matchKeywordGroups(forms.Phrase); len(groups) > 0 {
		return Result{Category: CategoryKeyword, Groups: groups}
	}
	return Result{Category: CategoryFallback}
}
