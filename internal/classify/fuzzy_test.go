package classify

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "gold", "gold", 0},
		{"empty to word", "", "gold", 4},
		{"word to empty", "gold", "", 4},
		{"single substitution", "gold", "bold", 1},
		{"single insertion", "god", "gold", 1},
		{"single deletion", "golds", "gold", 1},
		{"kitten sitting", "kitten", "sitting", 3},
		{"flaw lawn", "flaw", "lawn", 2},
		{"disjoint", "abcd", "wxyz", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Levenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevenshteinSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"bsdk", "bsdka"},
		{"", "abc"},
	}
	for _, p := range pairs {
		if ab, ba := Levenshtein(p[0], p[1]), Levenshtein(p[1], p[0]); ab != ba {
			t.Errorf("Levenshtein(%q, %q) = %d but reversed = %d", p[0], p[1], ab, ba)
		}
	}
}

func TestFuzzyContains(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		term    string
		maxDist int
		want    bool
	}{
		{"exact substring", "youarebsdkuseless", "bsdk", 2, true},
		{"one edit away", "youarebsdak", "bsdk", 2, true},
		{"window with one substitution", "youarebzdkuseless", "bsdk", 2, true},
		{"two edits away", "youarebzdmuseless", "bsdk", 2, true},
		{"three edits does not match", "youarexxxkuseless", "bsdk", 2, false},
		{"term longer than text", "hi", "bhosdike", 2, false},
		{"empty term", "anything", "", 2, false},
		{"zero threshold exact only", "stupidbot", "stupidbot", 0, true},
		{"zero threshold near miss", "stupidbbot", "stupidbot", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fuzzyContains(tt.text, tt.term, tt.maxDist); got != tt.want {
				t.Errorf("fuzzyContains(%q, %q, %d) = %v, want %v", tt.text, tt.term, tt.maxDist, got, tt.want)
			}
		})
	}
}
