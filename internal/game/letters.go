package game

// IsPossible reports whether candidate can be spelled from the letters of
// root, using each letter of root at most once.
//
// It walks candidate in order, removing one matching letter from a working
// bag of root's letters, and fails on the first letter with nothing left.
// Inputs are compared as-is; callers normalize case first.
func IsPossible(candidate, root string) bool {
	bag := make(map[rune]int, len(root))
	for _, r := range root {
		bag[r]++
	}
	for _, r := range candidate {
		if bag[r] == 0 {
			return false
		}
		bag[r]--
	}
	return true
}
