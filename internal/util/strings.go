// Package util provides small string helpers shared by the source validator,
// the query builder, and the terminal output.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// JoinOrDefault joins strings with ", " or returns the default value for empty slices.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// LevenshteinDistance counts the single-character edits between a and b.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// SuggestSimilar returns the candidates within maxDistance edits of input,
// closest first, compared case-insensitively. An exact match is returned
// alone.
func SuggestSimilar(input string, candidates []string, maxDistance int) []string {
	if input == "" || len(candidates) == 0 {
		return nil
	}

	lower := strings.ToLower(input)
	type scored struct {
		name string
		dist int
	}
	var matches []scored

	for _, c := range candidates {
		d := LevenshteinDistance(lower, strings.ToLower(c))
		if d == 0 && c == input {
			return []string{c}
		}
		if d <= maxDistance {
			matches = append(matches, scored{c, d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })

	var out []string
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}

// DidYouMean builds an error suggestion for an unknown value: a hint
// naming the closest candidate when there is one, then the full list.
func DidYouMean(input string, candidates []string) string {
	valid := "Use one of: " + JoinOrDefault(quoteAll(candidates), "(none)")
	if similar := SuggestSimilar(input, candidates, 2); len(similar) > 0 {
		return fmt.Sprintf("Did you mean %q? %s", similar[0], valid)
	}
	return valid
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
