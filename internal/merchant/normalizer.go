// Package merchant derives canonical merchant identities from raw
// transaction descriptions so that near-duplicate descriptions
// ("NETFLIX.COM", "NETFLIX INC") collapse into one cluster.
package merchant

import (
	"strings"

	"github.com/xrash/smetrics"
)

// DefaultSimilarityThreshold is the Jaro-Winkler score above which a
// description reuses an existing merchant key. Empirically chosen;
// tunable via configuration.
const DefaultSimilarityThreshold = 0.90

// Jaro-Winkler parameters: standard boost threshold and prefix size.
const (
	jaroWinklerBoost      = 0.7
	jaroWinklerPrefixSize = 4
)

// Normalizer maps descriptions to merchant keys for a single detection
// run. It accumulates known keys in discovery order, so feeding it
// transactions in a stable order yields deterministic keys.
type Normalizer struct {
	seen      map[string]struct{}
	keys      []string
	threshold float64
}

// NewNormalizer creates a normalizer with the given similarity
// threshold. Thresholds outside (0, 1] fall back to the default.
func NewNormalizer(threshold float64) *Normalizer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	return &Normalizer{
		seen:      make(map[string]struct{}),
		threshold: threshold,
	}
}

// Canonical returns the trimmed, whitespace-collapsed, case-normalized
// form of a description.
func Canonical(description string) string {
	return strings.ToUpper(strings.Join(strings.Fields(description), " "))
}

// Key maps a description to its merchant key. The canonical form of
// the description is compared against every known key; the best match
// at or above the threshold wins, otherwise the canonical form is
// minted as a new key. Total: never fails, empty input yields "".
func (n *Normalizer) Key(description string) string {
	canonical := Canonical(description)
	if canonical == "" {
		return ""
	}

	if _, ok := n.seen[canonical]; ok {
		return canonical
	}

	bestKey := ""
	bestScore := 0.0
	for _, key := range n.keys {
		score := smetrics.JaroWinkler(canonical, key, jaroWinklerBoost, jaroWinklerPrefixSize)
		if score > bestScore {
			bestKey, bestScore = key, score
		}
	}

	if bestScore >= n.threshold {
		return bestKey
	}

	n.keys = append(n.keys, canonical)
	n.seen[canonical] = struct{}{}
	return canonical
}

// Keys returns the known merchant keys in discovery order.
func (n *Normalizer) Keys() []string {
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	return keys
}
