// Package pipeline composes normalization and scoring into immutable snapshots.
package pipeline

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/internal/s0_data/collector"
	"github.com/tradingfury/macroscore/internal/s0_data/normalizer"
	"github.com/tradingfury/macroscore/internal/s0_data/quality"
	"github.com/tradingfury/macroscore/internal/scoring"
)

// Snapshot is the result of one scrape and score cycle. It is never mutated after it is built.
type Snapshot struct {
	ID              uuid.UUID                        `json:"id"`
	GeneratedAt     time.Time                        `json:"generated_at"`
	CollectedAt     time.Time                        `json:"collected_at"`
	Records         *contracts.RecordSet             `json:"-"`
	Dropped         []*contracts.MalformedValueError `json:"-"`
	Ignored         int                              `json:"ignored_rows"`
	FailedCountries []collector.CountryResult        `json:"-"`
	Quality         *quality.Report                  `json:"quality"`
	Currencies      *contracts.CurrencyScoreTable    `json:"-"`
	Pairs           *contracts.PairScoreTable        `json:"-"`
}

// RunPipeline normalizes raw rows and scores them.
// The result depends only on rows; equal input yields equal tables.
func RunPipeline(rows []contracts.RawRow) *Snapshot {
	now := time.Now().UTC()

	norm := normalizer.Normalize(rows)
	currencies := scoring.ScoreCurrencies(norm.Records)
	pairs := scoring.ScorePairs(currencies, norm.Records)

	return &Snapshot{
		ID:          uuid.New(),
		GeneratedAt: now,
		CollectedAt: now,
		Records:     norm.Records,
		Dropped:     norm.Dropped,
		Ignored:     norm.Ignored,
		Quality:     quality.NewQualityGate(quality.DefaultConfig()).Check(norm.Records, now),
		Currencies:  currencies,
		Pairs:       pairs,
	}
}

// FromRaw runs the pipeline over a collected snapshot and keeps its fetch outcome
func FromRaw(raw *collector.RawSnapshot) *Snapshot {
	snap := RunPipeline(raw.Rows)
	snap.CollectedAt = raw.CollectedAt
	snap.FailedCountries = raw.FailedCountries()
	return snap
}

// Err joins every currency and pair failure, or returns nil when the snapshot is complete
func (s *Snapshot) Err() error {
	var errs []error
	for _, f := range s.Currencies.Failures() {
		errs = append(errs, f.Err)
	}
	for _, f := range s.Pairs.Failures() {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}
