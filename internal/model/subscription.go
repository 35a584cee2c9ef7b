package model

import "time"

// Frequency labels how often a recurring charge lands.
type Frequency string

// Frequency labels assigned from the rounded mean interval.
const (
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiWeekly   Frequency = "bi-weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiAnnual Frequency = "semi-annual"
	FrequencyAnnual     Frequency = "annual"
)

// FrequencyForInterval maps a rounded mean interval in days to its label.
func FrequencyForInterval(days int) Frequency {
	switch {
	case days <= 8:
		return FrequencyWeekly
	case days <= 16:
		return FrequencyBiWeekly
	case days <= 35:
		return FrequencyMonthly
	case days <= 100:
		return FrequencyQuarterly
	case days <= 200:
		return FrequencySemiAnnual
	default:
		return FrequencyAnnual
	}
}

// SubscriptionRecord is one detected recurring charge. Records are
// recomputed on every detection run and never persisted; only the
// hidden override state survives between runs.
type SubscriptionRecord struct {
	FirstCharge          time.Time
	LastCharge           time.Time
	MerchantKey          string
	Frequency            Frequency
	RepresentativeAmount float64
	AnnualCost           float64
	IntervalDays         int
	OccurrenceCount      int
	Hidden               bool
}

// MonthlyCost derives the monthly figure from the annual cost. It is
// intentionally not rounded separately so sums don't drift.
func (r SubscriptionRecord) MonthlyCost() float64 {
	return r.AnnualCost / 12
}
