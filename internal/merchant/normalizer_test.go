package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "netflix.com", want: "NETFLIX.COM"},
		{name: "surrounding whitespace", input: "  Spotify USA  ", want: "SPOTIFY USA"},
		{name: "inner whitespace collapsed", input: "GYM\t  MEMBERSHIP", want: "GYM MEMBERSHIP"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.input))
		})
	}
}

func TestNormalizer_FuzzyMerge(t *testing.T) {
	n := NewNormalizer(DefaultSimilarityThreshold)

	key := n.Key("SPOTIFY USA")
	require.Equal(t, "SPOTIFY USA", key)

	// Near-duplicate collapses onto the existing key.
	assert.Equal(t, "SPOTIFY USA", n.Key("SPOTIFY USA 2"))
	assert.Equal(t, "SPOTIFY USA", n.Key("spotify usa"))

	// Unrelated merchants never merge.
	assert.Equal(t, "NETFLIX", n.Key("NETFLIX"))
	assert.Len(t, n.Keys(), 2)
}

func TestNormalizer_FirstSeenKeyWins(t *testing.T) {
	n := NewNormalizer(DefaultSimilarityThreshold)

	require.Equal(t, "NETFLIX.COM", n.Key("NETFLIX.COM"))
	assert.Equal(t, "NETFLIX.COM", n.Key("NETFLIX.COM 2"))
	assert.Equal(t, []string{"NETFLIX.COM"}, n.Keys())
}

func TestNormalizer_Deterministic(t *testing.T) {
	descriptions := []string{
		"AMAZON PRIME",
		"amazon prime 2",
		"HULU LLC",
		"GYM MEMBERSHIP",
		"HULU  LLC",
	}

	run := func() []string {
		n := NewNormalizer(DefaultSimilarityThreshold)
		keys := make([]string, 0, len(descriptions))
		for _, d := range descriptions {
			keys = append(keys, n.Key(d))
		}
		return keys
	}

	assert.Equal(t, run(), run())
}

func TestNormalizer_InvalidThresholdFallsBack(t *testing.T) {
	n := NewNormalizer(-1)
	assert.Equal(t, DefaultSimilarityThreshold, n.threshold)

	n = NewNormalizer(1.5)
	assert.Equal(t, DefaultSimilarityThreshold, n.threshold)
}

func TestNormalizer_EmptyDescription(t *testing.T) {
	n := NewNormalizer(DefaultSimilarityThreshold)
	assert.Equal(t, "", n.Key(""))
	assert.Empty(t, n.Keys())
}
