package transcript

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Similarity returns a text-similarity score in [0,1] between two strings.
// Comparison is case-insensitive over NFC-normalized text.
//
// Edge cases, in order:
//   - both empty: 1.0
//   - exactly one empty: 0.0
//   - exact match after lowercasing: 1.0
//   - one string contains the other: min(len)/max(len) + 0.2, capped at 1.0.
//     The +0.2 bias deliberately pushes short-vs-long prefix matches
//     ("Hello" vs "Hello there") toward the duplicate side of the threshold.
//   - otherwise: longest-common-subsequence length / max(len), capped at 1.0.
func Similarity(a, b string) float64 {
	s1 := strings.ToLower(norm.NFC.String(a))
	s2 := strings.ToLower(norm.NFC.String(b))

	if s1 == "" && s2 == "" {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}
	if s1 == s2 {
		return 1.0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	shorter, longer := len(r1), len(r2)
	if shorter > longer {
		shorter, longer = longer, shorter
	}

	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		score := float64(shorter)/float64(longer) + 0.2
		if score > 1.0 {
			score = 1.0
		}
		return score
	}

	score := float64(lcsLength(r1, r2)) / float64(longer)
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// lcsLength computes the longest-common-subsequence length between two rune
// slices using the usual two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
