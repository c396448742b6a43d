package cron

import (
	"context"
	"time"

	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/pkg/xcontext"
)

// DeadlineRolloverCronJob watches for bounty and quest deadlines expiring
// between two runs. A passed deadline changes derived state (an open bounty
// becomes judgeable, a quest stops accepting entries) without any chain event
// firing, so the snapshot must be re-derived.
type DeadlineRolloverCronJob struct {
	aggregator *indexer.Aggregator
	frequency  time.Duration
	lastRun    time.Time
}

func NewDeadlineRolloverCronJob(aggregator *indexer.Aggregator, frequency time.Duration) *DeadlineRolloverCronJob {
	if frequency == 0 {
		frequency = time.Minute
	}

	return &DeadlineRolloverCronJob{
		aggregator: aggregator,
		frequency:  frequency,
		lastRun:    time.Now(),
	}
}

func (job *DeadlineRolloverCronJob) Do(ctx context.Context) {
	now := time.Now()
	defer func() { job.lastRun = now }()

	if !job.anyDeadlinePassed(job.lastRun.Unix(), now.Unix()) {
		return
	}

	xcontext.Logger(ctx).Infof("A deadline passed, reloading snapshot")
	if err := job.aggregator.ReloadAll(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Reload after deadline rollover failed: %v", err)
	}
}

func (job *DeadlineRolloverCronJob) anyDeadlinePassed(from, to int64) bool {
	snapshot := job.aggregator.Snapshot()
	for i := range snapshot.Bounties {
		bounty := &snapshot.Bounties[i]
		if bounty.Status == entity.BountyResolved || bounty.Status == entity.BountySlashed {
			continue
		}

		if inWindow(bounty.OpenDeadline, from, to) || inWindow(bounty.JudgingDeadline, from, to) {
			return true
		}
	}

	for i := range snapshot.Quests {
		quest := &snapshot.Quests[i]
		if quest.Resolved || quest.Cancelled {
			continue
		}

		if inWindow(quest.Deadline, from, to) {
			return true
		}
	}

	return false
}

func inWindow(ts, from, to int64) bool {
	return ts > from && ts <= to
}

func (job *DeadlineRolloverCronJob) RunNow() bool {
	return false
}

func (job *DeadlineRolloverCronJob) Next() time.Time {
	return time.Now().Add(job.frequency)
}
