package jobs

import (
	"context"
	"fmt"

	"github.com/tradingfury/macroscore/internal/pipeline"
	"github.com/tradingfury/macroscore/pkg/logger"
)

// Refresher runs one scrape and score cycle
type Refresher interface {
	Refresh(ctx context.Context) (*pipeline.Snapshot, error)
}

// ScoringRefreshJob rebuilds the score tables on a schedule
// ⭐ SSOT: 점수 갱신 스케줄은 이 Job에서만
type ScoringRefreshJob struct {
	refresher Refresher
	schedule  string
	logger    *logger.Logger
}

// NewScoringRefreshJob creates a new scoring refresh job
func NewScoringRefreshJob(r Refresher, schedule string, log *logger.Logger) *ScoringRefreshJob {
	return &ScoringRefreshJob{
		refresher: r,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *ScoringRefreshJob) Name() string {
	return "scoring_refresh"
}

// Schedule returns the cron schedule (hourly by default)
func (j *ScoringRefreshJob) Schedule() string {
	return j.schedule
}

// Run executes one refresh.
// A snapshot with failed countries still counts as success; the failures are in the snapshot.
func (j *ScoringRefreshJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled scoring refresh")

	snap, err := j.refresher.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh scores: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"snapshot_id":      snap.ID.String(),
		"failed_countries": len(snap.FailedCountries),
		"pairs_failed":     len(snap.Pairs.Failures()),
	}).Info("Scheduled scoring refresh completed")

	return nil
}
