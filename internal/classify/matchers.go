package classify

import (
	"strings"

	"github.com/1adityakadam/financial-calculators/internal/textnorm"
)

// matchWholeMessage reports whether the entire normalized message equals
// one of the tokens. Substring hits deliberately do not count: "hi" inside
// a longer sentence is not a greeting, only a message that *is* "hi".
func matchWholeMessage(phrase string, tokens []string) bool {
	for _, tok := range tokens {
		if phrase == textnorm.Normalize(tok).Phrase {
			return true
		}
	}
	return false
}

// matchPhraseList reports whether any phrase in the list occurs inside the
// whitespace-preserved form of the message.
func (r *Router) matchPhraseList(phrase string, list []string) bool {
	for _, p := range list {
		n := textnorm.Normalize(p).Phrase
		if n != "" && strings.Contains(phrase, n) {
			return true
		}
	}
	return false
}

// matchAbuse scans the whitespace-removed form of the message for every
// abusive term across all languages. Exact substring hits win immediately;
// otherwise a windowed edit-distance scan allows up to the configured
// number of edits, tightened for short terms so four-letter slurs don't
// swallow ordinary words like "bank". Returns the first term that fired.
func (r *Router) matchAbuse(dense string) (string, bool) {
	for _, terms := range r.rules.AbusiveTerms {
		for _, term := range terms {
			t := textnorm.Normalize(term).Dense
			if t == "" {
				continue
			}
			if fuzzyContains(dense, t, scaledThreshold(len(t), r.rules.AbuseThreshold)) {
				return term, true
			}
		}
	}
	return "", false
}

// scaledThreshold caps the edit budget by term length. A budget of 2 on a
// four-letter term matches half the dictionary.
func scaledThreshold(termLen, max int) int {
	switch {
	case termLen < 4:
		return 0
	case termLen < 6:
		return 1
	default:
		return max
	}
}

// matchBroadTopic returns the key of the first broad topic, in priority
// order, with a phrase contained in the message.
func (r *Router) matchBroadTopic(phrase string) (string, bool) {
	for _, bt := range r.rules.BroadTopics {
		for _, p := range bt.Phrases {
			n := textnorm.Normalize(p).Phrase
			if n != "" && strings.Contains(phrase, n) {
				return bt.Key, true
			}
		}
	}
	return "", false
}

// matchCalculator scans for calculator aliases and returns the key of the
// longest matching alias, so "goal sip calculator" resolves to goal-sip
// rather than sip. Aliases match on word boundaries within the phrase form:
// "sip" must appear as its own word, not inside "mississippi".
func (r *Router) matchCalculator(phrase string) (string, bool) {
	padded := " " + phrase + " "
	bestKey, bestLen := "", 0
	for _, c := range r.rules.Calculators {
		for _, alias := range c.Aliases {
			n := textnorm.Normalize(alias).Phrase
			if n == "" || len(n) <= bestLen {
				continue
			}
			if strings.Contains(padded, " "+n+" ") {
				bestKey, bestLen = c.Key, len(n)
			}
		}
	}
	return bestKey, bestKey != ""
}

// matchKeywordGroups collects every keyword group with at least one keyword
// occurring in the message, preserving rule order and deduplicating, so the
// composer can answer once for all matched groups instead of flooding the
// user with one template per group.
func (r *Router) matchKeywordGroups(phrase string) []string {
	padded := " " + phrase + " "
	var matched []string
	seen := make(map[string]bool)
	for _, kg := range r.rules.KeywordGroups {
		if seen[kg.Key] {
			continue
		}
		for _, kw := range kg.Keywords {
			n := textnorm.Normalize(kw).Phrase
			if n == "" {
				continue
			}
			// Multi-word keywords match as substrings; single words match
			// on word boundaries so short keywords like "etf" don't fire
			// inside unrelated words.
			var hit bool
			if strings.Contains(n, " ") {
				hit = strings.Contains(phrase, n)
			} else {
				hit = strings.Contains(padded, " "+n+" ")
			}
			if hit {
				matched = append(matched, kg.Key)
				seen[kg.Key] = true
				break
			}
		}
	}
	return matched
}
