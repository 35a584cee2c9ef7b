package detect

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/subwatch/internal/merchant"
	"github.com/Veraticus/subwatch/internal/model"
)

// Config holds the detection tuning knobs. The similarity threshold
// and dispersion ratio are empirically calibrated and deliberately
// configurable rather than hardcoded.
type Config struct {
	SimilarityThreshold float64
	DispersionRatio     float64
	MinIntervalDays     float64
	MaxIntervalDays     float64
	MinOccurrences      int
}

// DefaultConfig returns the default detection configuration.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: merchant.DefaultSimilarityThreshold,
		DispersionRatio:     0.3,
		MinIntervalDays:     5,
		MaxIntervalDays:     400,
		MinOccurrences:      3,
	}
}

// Candidate is a cluster that passed the periodicity test, with its
// inferred cadence and representative charge amount.
type Candidate struct {
	Cluster              Cluster
	MeanInterval         float64
	IntervalDays         int
	Frequency            model.Frequency
	RepresentativeAmount float64
}

// Classifier decides whether a cluster's charge gaps are regular
// enough to call a subscription.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier with the given configuration.
// Zero or negative knobs fall back to their defaults.
func NewClassifier(cfg Config) *Classifier {
	defaults := DefaultConfig()
	if cfg.DispersionRatio <= 0 {
		cfg.DispersionRatio = defaults.DispersionRatio
	}
	if cfg.MinIntervalDays <= 0 {
		cfg.MinIntervalDays = defaults.MinIntervalDays
	}
	if cfg.MaxIntervalDays <= 0 {
		cfg.MaxIntervalDays = defaults.MaxIntervalDays
	}
	if cfg.MinOccurrences <= 0 {
		cfg.MinOccurrences = defaults.MinOccurrences
	}
	return &Classifier{cfg: cfg}
}

// Classify accepts a cluster when it has at least MinOccurrences
// charges, the mean gap falls inside the plausible interval window,
// and the gaps' dispersion stays below DispersionRatio of the mean.
// Rejected clusters return (nil, false) and never reach the output.
func (c *Classifier) Classify(cluster Cluster, gaps []int) (*Candidate, bool) {
	if len(gaps) < c.cfg.MinOccurrences-1 {
		return nil, false
	}

	mean := meanInt(gaps)
	if mean < c.cfg.MinIntervalDays || mean > c.cfg.MaxIntervalDays {
		return nil, false
	}

	if stddevInt(gaps, mean) >= c.cfg.DispersionRatio*mean {
		return nil, false
	}

	intervalDays := int(math.Round(mean))
	return &Candidate{
		Cluster:              cluster,
		MeanInterval:         mean,
		IntervalDays:         intervalDays,
		Frequency:            model.FrequencyForInterval(intervalDays),
		RepresentativeAmount: representativeAmount(cluster.Charges),
	}, true
}

// representativeAmount is the mean of the absolute charge amounts,
// rounded half-up to two decimal places.
func representativeAmount(charges []model.Transaction) float64 {
	if len(charges) == 0 {
		return 0
	}
	var sum float64
	for _, t := range charges {
		sum += math.Abs(t.Amount)
	}
	return roundCents(sum / float64(len(charges)))
}

// roundCents rounds half-up to two decimal places.
func roundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func meanInt(values []int) float64 {
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// stddevInt is the population standard deviation of the gaps.
func stddevInt(values []int, mean float64) float64 {
	var sum float64
	for _, v := range values {
		d := float64(v) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
