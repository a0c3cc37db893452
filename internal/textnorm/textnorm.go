// Package textnorm canonicalizes chat text before rule matching.
//
// Matching works on two derived forms of the same message: a
// whitespace-preserved form for phrase and keyword checks, and a
// whitespace-removed form for fuzzy substring work, where inserted
// spaces would otherwise defeat windowed edit-distance scans.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Forms holds the normalized variants of one message.
type Forms struct {
	// Phrase is lowercased with diacritics stripped, punctuation replaced
	// by spaces, and runs of whitespace collapsed to single spaces.
	Phrase string
	// Dense is Phrase with all whitespace removed.
	Dense string
}

// stripMarks removes combining marks after NFD decomposition, so "héllo"
// and "hello" compare equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize derives both matching forms from a raw message. Empty input
// yields empty forms; the function is total and never fails.
func Normalize(text string) Forms {
	folded, _, err := transform.String(stripMarks, strings.ToLower(text))
	if err != nil {
		// transform.String only fails on malformed UTF-8; fall back to the
		// lowercased original so matching still sees something sensible.
		folded = strings.ToLower(text)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			// Punctuation, symbols, and whitespace all become separators.
			b.WriteByte(' ')
		}
	}

	phrase := strings.Join(strings.Fields(b.String()), " ")
	return Forms{
		Phrase: phrase,
		Dense:  strings.ReplaceAll(phrase, " ", ""),
	}
}
