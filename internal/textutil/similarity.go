package textutil

import (
	"math"
	"unicode/utf8"
)

// Levenshtein returns the edit distance between a and b where insertion,
// deletion, and substitution each cost 1. Runs in O(len(a)*len(b)) time and
// O(min(len(a), len(b))) space.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
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

// Similarity scores a and b on a 0..1 scale as 1 - distance/maxLen.
// Returns 0 if either string is empty, including when both are.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1 - float64(Levenshtein(a, b))/float64(maxLen)
}

// FuzzyMatchAverage pairs every element of candidates with its most similar
// element in reference and returns the mean similarity as a percentage
// rounded to two decimals. The comparison is asymmetric: only candidates
// drive the average. An empty candidates list scores 0.
func FuzzyMatchAverage(candidates, reference []string) float64 {
	if len(candidates) == 0 {
		return 0
	}
	var total float64
	for _, a := range candidates {
		best := 0.0
		for _, b := range reference {
			if s := Similarity(a, b); s > best {
				best = s
				if best == 1 {
					break
				}
			}
		}
		total += best
	}
	avg := total / float64(len(candidates))
	return RoundPercent(avg * 100)
}

// RoundPercent rounds a percentage to two decimal places.
func RoundPercent(value float64) float64 {
	return math.Round(value*100) / 100
}
