package core

import "github.com/sahilm/fuzzy"

// candidateSource adapts a slice of candidate strings to
// fuzzy.Source so FilterSorted never copies the slice.
type candidateSource []string

func (c candidateSource) String(i int) string { return c[i] }
func (c candidateSource) Len() int             { return len(c) }

// FilterSorted fuzzy-matches pattern against candidates and returns the
// indices of the matches, ordered best-match-first. An empty pattern
// returns no matches rather than matching everything, since an empty
// filter box should show nothing has been typed yet.
func FilterSorted(pattern string, candidates []string) []int {
	if pattern == "" {
		return nil
	}
	matches := fuzzy.FindFrom(pattern, candidateSource(candidates))
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}
