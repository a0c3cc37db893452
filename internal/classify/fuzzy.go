package classify

import "strings"

// Levenshtein returns the edit distance between a and b using unit-cost
// insertions, deletions, and substitutions. Standard two-row DP; operates
// on bytes, which is fine here because both inputs have already been
// normalized to lowercase ASCII-ish text by the caller.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// fuzzyContains reports whether term occurs in text within maxDist edits.
// Exact substring occurrence short-circuits the windowed scan. Otherwise
// every window of text with the same length as term is compared; the scan
// stops as soon as any window is close enough.
//
// Obfuscation (dropped or substituted letters, spaces inserted before
// normalization) defeats plain substring search; a small edit-distance
// threshold recovers the near-misses while bounding false positives.
func fuzzyContains(text, term string, maxDist int) bool {
	if term == "" {
		return false
	}
	if strings.Contains(text, term) {
		return true
	}
	if maxDist <= 0 || len(text) < len(term) {
		return false
	}
	for i := 0; i+len(term) <= len(text); i++ {
		if Levenshtein(text[i:i+len(term)], term) <= maxDist {
			return true
		}
	}
	return false
}
