// Package rules holds the static rule data the message classifier runs
// against: greeting and farewell tokens, abusive-term lists, broad-topic
// phrases, keyword groups, and calculator aliases. A RuleSet is loaded
// once at startup and treated as immutable afterwards.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultAbuseThreshold is the maximum Levenshtein distance at which an
// abusive term still counts as a fuzzy match. Two edits on typical term
// lengths of 4-8 characters keeps precision reasonable.
const DefaultAbuseThreshold = 2

// BroadTopic is one exact multi-word phrase group checked before the looser
// keyword groups. Order in the slice is priority order.
type BroadTopic struct {
	Key     string   `yaml:"key"`
	Phrases []string `yaml:"phrases"`
}

// KeywordGroup is a looser topic match: any keyword occurring as a
// substring of the message claims the group.
type KeywordGroup struct {
	Key      string   `yaml:"key"`
	Display  string   `yaml:"display"`
	Keywords []string `yaml:"keywords"`
}

// Calculator maps spoken aliases to a calculator registry key.
type Calculator struct {
	Key     string   `yaml:"key"`
	Aliases []string `yaml:"aliases"`
}

// RuleSet is the full static configuration consumed by the classifier.
type RuleSet struct {
	Greetings      []string            `yaml:"greetings"`
	Farewells      []string            `yaml:"farewells"`
	PrivacyPhrases []string            `yaml:"privacy_phrases"`
	AbusiveTerms   map[string][]string `yaml:"abusive_terms"` // language -> terms
	AbuseThreshold int                 `yaml:"abuse_threshold"`
	BroadTopics    []BroadTopic        `yaml:"broad_topics"`
	KeywordGroups  []KeywordGroup      `yaml:"keyword_groups"`
	Calculators    []Calculator        `yaml:"calculators"`
}

// Default returns the compiled-in rule set.
func Default() *RuleSet {
	return &RuleSet{
		Greetings: []string{
			"hi", "hello", "hey", "yo", "namaste", "good morning",
			"good afternoon", "good evening", "hi there", "hello there",
		},
		Farewells: []string{
			"bye", "goodbye", "see you", "see ya", "take care",
			"good night", "thanks bye", "thank you bye",
		},
		PrivacyPhrases: []string{
			"my data", "my personal information", "do you store",
			"is this private", "who can see my", "delete my data",
			"privacy policy",
		},
		AbusiveTerms: map[string][]string{
			"english": {
				"stupid bot", "useless bot", "idiot", "dumb bot",
				"shut up", "screw you",
			},
			"hindi": {
				"bsdk", "bhosdike", "chutiya", "madarchod", "behenchod",
				"harami", "kamina",
			},
		},
		AbuseThreshold: DefaultAbuseThreshold,
		BroadTopics: []BroadTopic{
			{Key: "investment", Phrases: []string{
				"investment planning and calculations",
				"investment calculations and strategies",
				"how to start investing",
			}},
			{Key: "retirement", Phrases: []string{
				"retirement planning",
				"financial independence retire early",
				"early retirement planning",
			}},
			{Key: "tax", Phrases: []string{
				"tax planning and optimization",
				"tax saving options",
				"house rent allowance exemption",
			}},
			{Key: "loan", Phrases: []string{
				"loan and mortgage calculations",
				"home loan planning",
				"loan repayment planning",
			}},
			{Key: "advice", Phrases: []string{
				"general financial advice",
				"help me with my finances",
				"improve my financial health",
			}},
		},
		KeywordGroups: []KeywordGroup{
			{Key: "precious-metals", Display: "precious metals", Keywords: []string{
				"gold", "silver", "platinum", "palladium", "bullion",
			}},
			{Key: "rare-earth-metals", Display: "rare-earth metals", Keywords: []string{
				"lithium", "cobalt", "neodymium", "rare earth",
			}},
			{Key: "gemstones", Display: "gemstones", Keywords: []string{
				"diamond", "ruby", "emerald", "sapphire", "gemstone",
			}},
			{Key: "stock-instruments", Display: "stocks and market instruments", Keywords: []string{
				"stock", "shares", "equity", "etf", "index fund",
				"bond", "dividend", "nifty", "sensex",
			}},
			{Key: "real-estate", Display: "real estate", Keywords: []string{
				"real estate", "property", "rental income", "reit", "land price",
			}},
			{Key: "cryptocurrency", Display: "cryptocurrency", Keywords: []string{
				"crypto", "bitcoin", "ethereum", "blockchain", "altcoin",
			}},
			{Key: "general-finance", Display: "general finance", Keywords: []string{
				"invest", "savings", "budget", "inflation", "interest rate",
				"portfolio", "wealth", "emergency fund",
			}},
		},
		Calculators: []Calculator{
			{Key: "goal-sip", Aliases: []string{"goal sip", "goal based sip", "target sip"}},
			{Key: "sip", Aliases: []string{"sip", "systematic investment plan"}},
			{Key: "mutual-fund", Aliases: []string{"mutual fund", "mf calculator"}},
			{Key: "compound", Aliases: []string{"compound interest", "compounding calculator"}},
			{Key: "fd", Aliases: []string{"fd", "fixed deposit"}},
			{Key: "rd", Aliases: []string{"rd", "recurring deposit"}},
			{Key: "cagr", Aliases: []string{"cagr", "compound annual growth rate"}},
			{Key: "mortgage", Aliases: []string{"mortgage", "home loan"}},
			{Key: "loan", Aliases: []string{"loan", "emi", "loan calculator"}},
			{Key: "tax", Aliases: []string{"tax", "income tax", "tax calculator"}},
			{Key: "fire", Aliases: []string{"fire", "financial independence"}},
			{Key: "hra", Aliases: []string{"hra", "house rent allowance"}},
		},
	}
}

// Load reads a YAML override file and merges it over the defaults. Only
// sections present in the file replace their default counterparts, so a
// deployment can swap the abusive-term lists without restating every
// keyword group.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var override RuleSet
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	rs := Default()
	if len(override.Greetings) > 0 {
		rs.Greetings = override.Greetings
	}
	if len(override.Farewells) > 0 {
		rs.Farewells = override.Farewells
	}
	if len(override.PrivacyPhrases) > 0 {
		rs.PrivacyPhrases = override.PrivacyPhrases
	}
	if len(override.AbusiveTerms) > 0 {
		rs.AbusiveTerms = override.AbusiveTerms
	}
	if override.AbuseThreshold > 0 {
		rs.AbuseThreshold = override.AbuseThreshold
	}
	if len(override.BroadTopics) > 0 {
		rs.BroadTopics = override.BroadTopics
	}
	if len(override.KeywordGroups) > 0 {
		rs.KeywordGroups = override.KeywordGroups
	}
	if len(override.Calculators) > 0 {
		rs.Calculators = override.Calculators
	}

	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return rs, nil
}

// Validate checks structural constraints on a rule set.
func (rs *RuleSet) Validate() error {
	if rs.AbuseThreshold < 0 || rs.AbuseThreshold > 5 {
		return fmt.Errorf("abuse_threshold %d out of range [0,5]", rs.AbuseThreshold)
	}
	for _, bt := range rs.BroadTopics {
		if bt.Key == "" || len(bt.Phrases) == 0 {
			return fmt.Errorf("broad topic %q must have a key and at least one phrase", bt.Key)
		}
	}
	for _, kg := range rs.KeywordGroups {
		if kg.Key == "" || len(kg.Keywords) == 0 {
			return fmt.Errorf("keyword group %q must have a key and at least one keyword", kg.Key)
		}
	}
	for _, c := range rs.Calculators {
		if c.Key == "" || len(c.Aliases) == 0 {
			return fmt.Errorf("calculator %q must have a key and at least one alias", c.Key)
		}
	}
	return nil
}
