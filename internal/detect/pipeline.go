package detect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/subwatch/internal/common"
	"github.com/Veraticus/subwatch/internal/merchant"
	"github.com/Veraticus/subwatch/internal/model"
	"github.com/Veraticus/subwatch/internal/service"
)

// Pipeline orchestrates detection over the full transaction history.
// Every run re-derives all subscriptions from scratch; the pipeline
// keeps no state between runs, so it is safe to run concurrently with
// itself as long as each call gets its own Result.
type Pipeline struct {
	source     service.TransactionSource
	overrides  service.OverrideStore
	classifier *Classifier
	cfg        Config
}

// Result is the output of one detection run. Degraded carries the
// read failures of the run, each wrapping common.ErrLedgerUnavailable
// or common.ErrOverrideStoreUnavailable so callers can branch with
// errors.Is; Warnings holds the same failures as display strings.
type Result struct {
	Records  []model.SubscriptionRecord
	Warnings []string
	Degraded []error `json:"-"`
	Summary  Summary
}

// Summary aggregates the visible records. All figures are derived from
// the record list, never maintained separately.
type Summary struct {
	MonthlyCost float64
	AnnualCost  float64
	ActiveCount int
	HiddenCount int
}

// NewPipeline creates a detection pipeline over the given ledger and
// override store.
func NewPipeline(source service.TransactionSource, overrides service.OverrideStore, cfg Config) *Pipeline {
	return &Pipeline{
		source:     source,
		overrides:  overrides,
		classifier: NewClassifier(cfg),
		cfg:        cfg,
	}
}

// Detect runs the full pipeline: filter to charges, cluster by
// merchant, classify periodicity, project cost, join hidden state, and
// rank by annual cost. An unreadable ledger yields an empty result
// with a warning; an unreadable override store degrades to "no
// overrides". Cancellation is honored between clusters.
func (p *Pipeline) Detect(ctx context.Context) (*Result, error) {
	transactions, hidden, degraded, ok := p.fetch(ctx)
	result := &Result{Degraded: degraded}
	for _, err := range degraded {
		result.Warnings = append(result.Warnings, err.Error())
	}
	if !ok {
		return result, nil
	}

	charges := p.filterCharges(transactions)
	clusters, order := p.cluster(charges)

	for _, key := range order {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cluster := Cluster{Key: key, Charges: clusters[key]}
		gaps := ExtractIntervals(cluster.Charges)
		candidate, ok := p.classifier.Classify(cluster, gaps)
		if !ok {
			continue
		}

		sorted := SortChargesByDate(cluster.Charges)
		_, isHidden := hidden[key]
		result.Records = append(result.Records, model.SubscriptionRecord{
			MerchantKey:          key,
			RepresentativeAmount: candidate.RepresentativeAmount,
			Frequency:            candidate.Frequency,
			IntervalDays:         candidate.IntervalDays,
			OccurrenceCount:      len(cluster.Charges),
			AnnualCost:           ProjectAnnualCost(candidate.RepresentativeAmount, candidate.MeanInterval),
			FirstCharge:          sorted[0].Date,
			LastCharge:           sorted[len(sorted)-1].Date,
			Hidden:               isHidden,
		})
	}

	sort.SliceStable(result.Records, func(i, j int) bool {
		a, b := result.Records[i], result.Records[j]
		if a.AnnualCost != b.AnnualCost {
			return a.AnnualCost > b.AnnualCost
		}
		return a.MerchantKey < b.MerchantKey
	})

	result.Summary = summarize(result.Records)
	return result, nil
}

// fetch reads the ledger and the override state concurrently. The two
// reads are independent; both must complete before classification.
// Failures come back wrapped in their degradation sentinel.
func (p *Pipeline) fetch(ctx context.Context) ([]model.Transaction, map[string]time.Time, []error, bool) {
	var (
		transactions []model.Transaction
		hidden       map[string]time.Time
		txErr, ovErr error
		wg           sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		transactions, txErr = p.source.ListCharges(ctx)
	}()
	go func() {
		defer wg.Done()
		hidden, ovErr = p.overrides.GetHiddenMerchants(ctx)
	}()
	wg.Wait()

	var degraded []error
	if txErr != nil {
		degraded = append(degraded, fmt.Errorf("%w: %v", common.ErrLedgerUnavailable, txErr))
		slog.Warn("Detection run aborted, ledger unreadable", "error", txErr)
		return nil, nil, degraded, false
	}
	if ovErr != nil {
		degraded = append(degraded, fmt.Errorf("%w: %v", common.ErrOverrideStoreUnavailable, ovErr))
		slog.Warn("Override store unreadable, proceeding without overrides", "error", ovErr)
		hidden = nil
	}

	return transactions, hidden, degraded, true
}

// filterCharges keeps debit transactions with a usable description and
// date, ordered chronologically (stable on ties) so merchant keys come
// out deterministic run over run.
func (p *Pipeline) filterCharges(transactions []model.Transaction) []model.Transaction {
	charges := make([]model.Transaction, 0, len(transactions))
	skipped := 0
	for _, t := range transactions {
		if t.IsMalformed() {
			skipped++
			continue
		}
		if !t.IsCharge() {
			continue
		}
		charges = append(charges, t)
	}
	if skipped > 0 {
		slog.Debug("Skipped malformed transactions", "count", skipped)
	}
	return SortChargesByDate(charges)
}

// cluster groups charges by merchant key, preserving first-seen key
// order for deterministic iteration.
func (p *Pipeline) cluster(charges []model.Transaction) (map[string][]model.Transaction, []string) {
	normalizer := merchant.NewNormalizer(p.cfg.SimilarityThreshold)
	clusters := make(map[string][]model.Transaction)
	var order []string

	for _, t := range charges {
		key := normalizer.Key(t.Description)
		if key == "" {
			continue
		}
		if _, ok := clusters[key]; !ok {
			order = append(order, key)
		}
		clusters[key] = append(clusters[key], t)
	}

	slog.Debug("Clustered charges by merchant", "charges", len(charges), "merchants", len(normalizer.Keys()))
	return clusters, order
}

func summarize(records []model.SubscriptionRecord) Summary {
	var s Summary
	for _, r := range records {
		if r.Hidden {
			s.HiddenCount++
			continue
		}
		s.ActiveCount++
		s.AnnualCost += r.AnnualCost
	}
	s.MonthlyCost = s.AnnualCost / 12
	return s
}
