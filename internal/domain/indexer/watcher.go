package indexer

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/math"
	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/domain/statistic"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/pubsub"
	"github.com/quinty-io/backend/pkg/xcontext"
)

const (
	MinWaitTime   = 500 // ms
	MaxScanBlocks = 100
)

// Watcher scans blocks for logs of the four contracts and applies the
// invalidation policy: creation events top up from the counter, state-change
// events trigger a full reload. Every decoded event is also published so the
// api process can invalidate its caches and notify browsers.
type Watcher struct {
	client          chain.Caller
	aggregator      *Aggregator
	achievementRepo repository.AchievementRepository
	leaderboard     statistic.Leaderboard
	publisher       pubsub.Publisher
	addresses       []common.Address

	blockHeight int64
	blockTime   int
}

func NewWatcher(
	client chain.Caller,
	aggregator *Aggregator,
	achievementRepo repository.AchievementRepository,
	leaderboard statistic.Leaderboard,
	publisher pubsub.Publisher,
	addresses []common.Address,
) *Watcher {
	return &Watcher{
		client:          client,
		aggregator:      aggregator,
		achievementRepo: achievementRepo,
		leaderboard:     leaderboard,
		publisher:       publisher,
		addresses:       addresses,
	}
}

func (w *Watcher) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Starting watcher...")

	w.blockTime = xcontext.Configs(ctx).Blockchain.BlockTime
	w.setBlockHeight(ctx)

	if err := w.aggregator.ReloadAll(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Initial reload failed: %v", err)
	}

	go w.scanBlocks(ctx)
}

func (w *Watcher) setBlockHeight(ctx context.Context) {
	cfg := xcontext.Configs(ctx).Blockchain
	for {
		number, err := w.client.BlockNumber(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get latest block number for chain %s: %v",
				cfg.Chain, err)
			time.Sleep(time.Second * 5)
			continue
		}

		w.blockHeight = math.MaxInt64(int64(number)-int64(cfg.ThresholdUpdateBlock), 0)
		break
	}

	xcontext.Logger(ctx).Infof("Watching from block %d for chain %s", w.blockHeight, cfg.Chain)
}

func (w *Watcher) scanBlocks(ctx context.Context) {
	cfg := xcontext.Configs(ctx).Blockchain

	for {
		if w.blockTime < 0 {
			w.blockTime = 0
		}

		events, scanned := w.tryScanRange(ctx)
		if !scanned {
			// Head not far enough ahead yet, extend the wait a bit.
			w.blockTime = w.blockTime + cfg.AdjustTime
			time.Sleep(time.Duration(w.blockTime) * time.Millisecond)
			continue
		}

		if len(events) > 0 {
			w.handleEvents(ctx, events)
		}

		if w.blockTime-cfg.AdjustTime/4 > MinWaitTime {
			w.blockTime = w.blockTime - cfg.AdjustTime/4
		}
		time.Sleep(time.Duration(w.blockTime) * time.Millisecond)
	}
}

// tryScanRange filters logs from the current height up to the chain head
// (bounded by MaxScanBlocks). The second return reports whether any range
// was scanned at all.
func (w *Watcher) tryScanRange(ctx context.Context) ([]*chain.Event, bool) {
	cfg := xcontext.Configs(ctx).Blockchain

	number, err := w.client.BlockNumber(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get block number for chain %s: %v", cfg.Chain, err)
		return nil, false
	}

	head := int64(number) - int64(cfg.ThresholdUpdateBlock)
	if head < w.blockHeight {
		return nil, false
	}

	to := math.MinInt64(head, w.blockHeight+MaxScanBlocks-1)
	logs, err := w.client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: big.NewInt(w.blockHeight),
		ToBlock:   big.NewInt(to),
		Addresses: w.addresses,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot filter logs of range [%d, %d] for chain %s: %v",
			w.blockHeight, to, cfg.Chain, err)
		return nil, false
	}

	events := make([]*chain.Event, 0, len(logs))
	for _, log := range logs {
		if event, ok := chain.ParseLog(log); ok {
			events = append(events, event)
		}
	}

	w.blockHeight = to + 1

	return events, true
}

// handleEvents applies the invalidation policy over one scanned batch.
// Ordering of events within the batch does not matter since every reload
// re-derives state from current chain storage.
func (w *Watcher) handleEvents(ctx context.Context, events []*chain.Event) {
	needFullReload := false
	needBountyTopUp := false
	needQuestTopUp := false
	needDisputeTopUp := false

	for _, event := range events {
		w.publishEvent(ctx, event)

		if event.Name == chain.EventAchievementUnlocked {
			w.saveAchievement(ctx, event)
			continue
		}

		if event.Kind == chain.EventKindStateChange {
			needFullReload = true
			continue
		}

		switch event.Name {
		case chain.EventBountyCreated:
			needBountyTopUp = true
		case chain.EventAirdropCreated:
			needQuestTopUp = true
		case chain.EventDisputeOpened:
			needDisputeTopUp = true
		}
	}

	if needFullReload {
		if err := w.aggregator.ReloadAll(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Reload after state-change event failed: %v", err)
		}

		if err := w.leaderboard.Invalidate(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot invalidate leaderboard: %v", err)
		}

		return
	}

	if needBountyTopUp {
		if err := w.aggregator.TopUpBounties(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Bounty top-up failed: %v", err)
		}

		if err := w.leaderboard.Invalidate(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot invalidate leaderboard: %v", err)
		}
	}

	if needQuestTopUp {
		if err := w.aggregator.TopUpQuests(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Quest top-up failed: %v", err)
		}
	}

	if needDisputeTopUp {
		if err := w.aggregator.TopUpDisputes(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Dispute top-up failed: %v", err)
		}
	}
}

func (w *Watcher) saveAchievement(ctx context.Context, event *chain.Event) {
	err := w.achievementRepo.Create(ctx, &entity.Achievement{
		Base:        entity.Base{ID: event.TxHash},
		UserAddress: event.UserAddress,
		TokenID:     event.TokenID,
		Name:        event.Detail,
		UnlockedAt:  time.Now().Unix(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save achievement of %s: %v", event.UserAddress, err)
	}
}

func (w *Watcher) publishEvent(ctx context.Context, event *chain.Event) {
	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to marshal event %s: %v", event.Name, err)
		return
	}

	err = w.publisher.Publish(ctx, model.ChainEventTopic, &pubsub.Pack{
		Key: []byte(event.TxHash),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to publish event %s: %v", event.Name, err)
	}
}
