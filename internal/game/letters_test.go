package game

import "testing"

func TestIsPossible(t *testing.T) {
	tests := []struct {
		candidate string
		root      string
		want      bool
	}{
		{"silk", "silkworm", true},
		{"mirk", "silkworm", true},
		{"worm", "silkworm", true},
		{"silkworm", "silkworm", true},
		{"silks", "silkworm", false}, // only one s
		{"worms", "silkworm", true},
		{"sworms", "silkworm", false}, // second s
		{"wool", "silkworm", false}, // only one o
		{"cat", "act", true},
		{"", "cat", true},
		{"a", "", false},
		{"xz", "cat", false},
		{"épée", "éép", false},
		{"pée", "éépe", true},
	}
	for _, tt := range tests {
		if got := IsPossible(tt.candidate, tt.root); got != tt.want {
			t.Errorf("IsPossible(%q, %q) = %v, want %v", tt.candidate, tt.root, got, tt.want)
		}
	}
}

func TestIsPossibleMatchesMultiset(t *testing.T) {
	root := "banana"
	counts := map[rune]int{'b': 1, 'a': 3, 'n': 2}
	for _, cand := range []string{"ban", "nab", "anna", "banana", "bananas", "bb", "aaaa", "nnn"} {
		want := true
		seen := map[rune]int{}
		for _, r := range cand {
			seen[r]++
			if seen[r] > counts[r] {
				want = false
			}
		}
		if got := IsPossible(cand, root); got != want {
			t.Errorf("IsPossible(%q, %q) = %v, want %v", cand, root, got, want)
		}
	}
}
