package model

import "strings"

// maxSuggestDistance bounds how far a misspelled model name may be from a
// known one and still be suggested.
const maxSuggestDistance = 2

// Suggest returns the known model name closest to name, or "" when none is
// within a couple of edits. Comparison ignores case.
func (t *Table) Suggest(name string) string {
	name = strings.ToUpper(name)

	best, bestDist := "", maxSuggestDistance+1

	for _, m := range t.Models {
		if d := editDistance(name, strings.ToUpper(m.Name)); d < bestDist {
			best, bestDist = m.Name, d
		}
	}

	return best
}

// editDistance is the Levenshtein distance between a and b over bytes.
func editDistance(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
