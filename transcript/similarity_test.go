package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1.0},
		{"first empty", "", "hello world", 0.0},
		{"second empty", "hello world", "", 0.0},
		{"exact match", "hello world", "hello world", 1.0},
		{"case-insensitive exact", "Hello World", "hello world", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Similarity(tt.a, tt.b))
		})
	}
}

func TestSimilarityContainmentBias(t *testing.T) {
	// "hello" (5 runes) inside "hello there" (11 runes): 5/11 + 0.2.
	got := Similarity("Hello", "Hello there")
	assert.InDelta(t, 5.0/11.0+0.2, got, 1e-9)

	// Containment score is capped at 1.0.
	assert.Equal(t, 1.0, Similarity("yes ok", "yes ok!"))
}

func TestSimilarityLCSFallback(t *testing.T) {
	// "abc" vs "axbxc": LCS is "abc" (3), max len 5.
	assert.InDelta(t, 3.0/5.0, Similarity("abc", "axbxc"), 1e-9)

	// Disjoint alphabets share nothing.
	assert.Equal(t, 0.0, Similarity("aaaa", "bbbb"))
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"hello world", "hello"},
		{"General Kenobi", "general kenobi you are a bold one"},
		{"abc", "axbxc"},
		{"", "x"},
		{"the quick brown fox", "a quick brown dog"},
		{"Ääkköset", "ääkköset test"},
	}

	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]),
			"similarity(%q,%q) should be symmetric", p[0], p[1])
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a", ""},
		{"short", "a much longer string that shares almost nothing"},
		{"yes", "yes yes yes yes yes"},
		{"repeated repeated repeated", "repeated"},
	}

	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestLCSLength(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"abc", "abc", 3},
		{"abc", "axbxc", 3},
		{"abcdef", "fedcba", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lcsLength([]rune(tt.a), []rune(tt.b)),
			"lcs(%q,%q)", tt.a, tt.b)
	}
}
