// Package detect implements the subscription detection pipeline:
// clustering charges by merchant, inferring periodic patterns, and
// projecting normalized cost.
package detect

import (
	"sort"
	"time"

	"github.com/Veraticus/subwatch/internal/model"
)

// Cluster groups all charges that share one merchant key.
type Cluster struct {
	Key     string
	Charges []model.Transaction
}

// SortChargesByDate returns a copy of the charges sorted ascending by
// date. The sort is stable so ties keep their input order.
func SortChargesByDate(charges []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(charges))
	copy(sorted, charges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// ExtractIntervals computes the whole-day gaps between consecutive
// charges in a cluster. Charges are ordered by date first, so the
// result has len(charges)-1 entries; fewer than two charges yield nil.
func ExtractIntervals(charges []model.Transaction) []int {
	if len(charges) < 2 {
		return nil
	}

	sorted := SortChargesByDate(charges)
	gaps := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, daysBetween(sorted[i-1].Date, sorted[i].Date))
	}
	return gaps
}

// daysBetween returns the whole-day span between two dates, comparing
// at UTC midnight so time-of-day and zone never shift a gap.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
