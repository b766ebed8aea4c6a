package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tradingfury/macroscore/internal/s0_data/collector"
	"github.com/tradingfury/macroscore/pkg/logger"
)

// ErrNotReady is returned by Current before the first refresh completes
var ErrNotReady = errors.New("no snapshot available yet")

// RawCollector gathers one complete raw snapshot
type RawCollector interface {
	Collect(ctx context.Context, cfg collector.Config) (*collector.RawSnapshot, error)
}

// Service keeps the latest published snapshot
// ⭐ SSOT: 최신 스냅샷은 Service만 보관
type Service struct {
	collector RawCollector
	config    collector.Config
	logger    *logger.Logger

	refreshMu sync.Mutex // serializes refresh cycles

	mu      sync.RWMutex
	current *Snapshot
}

// NewService creates a pipeline service
func NewService(c RawCollector, cfg collector.Config, log *logger.Logger) *Service {
	return &Service{
		collector: c,
		config:    cfg,
		logger:    log.Component("pipeline"),
	}
}

// Refresh collects every country, scores the result and publishes it.
// The previous snapshot stays current when collection is cancelled.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	raw, err := s.collector.Collect(ctx, s.config)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	snap := FromRaw(raw)

	for _, f := range snap.FailedCountries {
		s.logger.WithError(f.Err).WithField("country", f.Country).Warn("Country contributed no rows")
	}
	for _, d := range snap.Dropped {
		s.logger.WithError(d).Warn("Dropped malformed row")
	}
	for _, f := range snap.Currencies.Failures() {
		s.logger.WithError(f.Err).WithField("currency", f.Currency).Warn("Currency not scored")
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"snapshot_id":       snap.ID.String(),
		"records":           snap.Records.Len(),
		"dropped":           len(snap.Dropped),
		"failed_countries":  len(snap.FailedCountries),
		"currencies_scored": len(snap.Currencies.Rows()),
		"pairs_scored":      len(snap.Pairs.Rows()),
		"quality_score":     snap.Quality.QualityScore,
	}).Info("Snapshot published")

	return snap, nil
}

// Current returns the latest published snapshot
func (s *Service) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNotReady
	}
	return s.current, nil
}
