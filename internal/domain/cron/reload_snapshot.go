package cron

import (
	"context"
	"time"

	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/domain/statistic"
	"github.com/quinty-io/backend/pkg/xcontext"
)

// ReloadSnapshotCronJob periodically re-derives the whole read-model from
// chain storage. Events normally keep the snapshot fresh, this job is the
// safety net for missed logs and rpc hiccups.
type ReloadSnapshotCronJob struct {
	aggregator  *indexer.Aggregator
	leaderboard statistic.Leaderboard
	frequency   time.Duration
}

func NewReloadSnapshotCronJob(
	aggregator *indexer.Aggregator,
	leaderboard statistic.Leaderboard,
	frequency time.Duration,
) *ReloadSnapshotCronJob {
	if frequency == 0 {
		frequency = 10 * time.Minute
	}

	return &ReloadSnapshotCronJob{
		aggregator:  aggregator,
		leaderboard: leaderboard,
		frequency:   frequency,
	}
}

func (job *ReloadSnapshotCronJob) Do(ctx context.Context) {
	if err := job.aggregator.ReloadAll(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Periodic reload failed: %v", err)
		return
	}

	if err := job.leaderboard.Invalidate(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot invalidate leaderboard: %v", err)
	}
}

func (job *ReloadSnapshotCronJob) RunNow() bool {
	return true
}

func (job *ReloadSnapshotCronJob) Next() time.Time {
	return time.Now().Add(job.frequency)
}
