package indexer

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(
	quinty *testutil.MockQuintyGateway,
	quest *testutil.MockQuestGateway,
	dispute *testutil.MockDisputeGateway,
) *Aggregator {
	fetcher := NewEntityFetcher(quinty, quest, dispute, nil)
	return NewAggregator(
		fetcher,
		quinty, quest, dispute,
		repository.NewBountyRepository(),
		repository.NewQuestRepository(),
		repository.NewDisputeRepository(),
		nil,
	)
}

func Test_Aggregator_ReloadAll_NewestFirst(t *testing.T) {
	ctx := testutil.MockContext()

	quinty := &testutil.MockQuintyGateway{
		BountyCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(5), nil
		},
		GetBountyFunc: func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
			return testutil.SampleBountyRecord(id.Int64(), "0x1111111111111111111111111111111111111111"), nil
		},
	}
	aggregator := newTestAggregator(quinty, &testutil.MockQuestGateway{}, &testutil.MockDisputeGateway{})

	require.NoError(t, aggregator.ReloadAll(ctx))

	snapshot := aggregator.Snapshot()
	require.Len(t, snapshot.Bounties, 5)
	for i, bounty := range snapshot.Bounties {
		require.Equal(t, int64(5-i), bounty.OnChainID)
	}

	count, err := repository.NewBountyRepository().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), count)
}

func Test_Aggregator_ReloadAll_Idempotent(t *testing.T) {
	ctx := testutil.MockContext()

	quinty := &testutil.MockQuintyGateway{
		BountyCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(3), nil
		},
		GetBountyFunc: func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
			return testutil.SampleBountyRecord(id.Int64(), "0x2222222222222222222222222222222222222222"), nil
		},
	}
	quest := &testutil.MockQuestGateway{
		QuestCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(2), nil
		},
		GetQuestFunc: func(ctx context.Context, id *big.Int) (*chain.QuestRecord, error) {
			return testutil.SampleQuestRecord(id.Int64(), "0x3333333333333333333333333333333333333333"), nil
		},
	}
	aggregator := newTestAggregator(quinty, quest, &testutil.MockDisputeGateway{})

	require.NoError(t, aggregator.ReloadAll(ctx))
	first := aggregator.Snapshot()

	require.NoError(t, aggregator.ReloadAll(ctx))
	second := aggregator.Snapshot()

	require.Equal(t, stripBountyTimes(first.Bounties), stripBountyTimes(second.Bounties))
	require.Equal(t, stripQuestTimes(first.Quests), stripQuestTimes(second.Quests))
	require.Equal(t, first.Disputes, second.Disputes)
	require.Equal(t, first.EntryCounts, second.EntryCounts)
}

func Test_Aggregator_ReloadAll_PartialFailure(t *testing.T) {
	ctx := testutil.MockContext()

	quinty := &testutil.MockQuintyGateway{
		BountyCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(5), nil
		},
		GetBountyFunc: func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
			if id.Int64() == 3 {
				return nil, errors.New("rpc timeout")
			}

			return testutil.SampleBountyRecord(id.Int64(), "0x1111111111111111111111111111111111111111"), nil
		},
	}
	aggregator := newTestAggregator(quinty, &testutil.MockQuestGateway{}, &testutil.MockDisputeGateway{})

	require.NoError(t, aggregator.ReloadAll(ctx))

	snapshot := aggregator.Snapshot()
	ids := []int64{}
	for _, bounty := range snapshot.Bounties {
		ids = append(ids, bounty.OnChainID)
	}
	require.Equal(t, []int64{5, 4, 2, 1}, ids)
}

func Test_Aggregator_ReloadAll_CounterFailureKeepsLastKnown(t *testing.T) {
	ctx := testutil.MockContext()

	counterErr := atomic.Bool{}
	quinty := &testutil.MockQuintyGateway{
		BountyCounterFunc: func(ctx context.Context) (*big.Int, error) {
			if counterErr.Load() {
				return nil, errors.New("rpc down")
			}

			return big.NewInt(2), nil
		},
		GetBountyFunc: func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
			return testutil.SampleBountyRecord(id.Int64(), "0x1111111111111111111111111111111111111111"), nil
		},
	}
	aggregator := newTestAggregator(quinty, &testutil.MockQuestGateway{}, &testutil.MockDisputeGateway{})

	require.NoError(t, aggregator.ReloadAll(ctx))
	require.Len(t, aggregator.Snapshot().Bounties, 2)

	counterErr.Store(true)
	require.NoError(t, aggregator.ReloadAll(ctx))
	require.Len(t, aggregator.Snapshot().Bounties, 2)
}

func Test_Aggregator_TopUpBounties(t *testing.T) {
	ctx := testutil.MockContext()

	counter := atomic.Int64{}
	counter.Store(2)

	var mutex sync.Mutex
	var fetched []int64
	quinty := &testutil.MockQuintyGateway{
		BountyCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(counter.Load()), nil
		},
		GetBountyFunc: func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
			mutex.Lock()
			fetched = append(fetched, id.Int64())
			mutex.Unlock()
			return testutil.SampleBountyRecord(id.Int64(), "0x1111111111111111111111111111111111111111"), nil
		},
	}
	aggregator := newTestAggregator(quinty, &testutil.MockQuestGateway{}, &testutil.MockDisputeGateway{})

	require.NoError(t, aggregator.ReloadAll(ctx))
	require.Len(t, aggregator.Snapshot().Bounties, 2)

	counter.Store(4)
	fetched = nil
	require.NoError(t, aggregator.TopUpBounties(ctx))

	require.ElementsMatch(t, []int64{3, 4}, fetched)

	ids := []int64{}
	for _, bounty := range aggregator.Snapshot().Bounties {
		ids = append(ids, bounty.OnChainID)
	}
	require.Equal(t, []int64{4, 3, 2, 1}, ids)
}

func Test_Aggregator_TopUpBounties_NoNewIDs(t *testing.T) {
	ctx := testutil.MockContext()

	quinty := &testutil.MockQuintyGateway{
		BountyCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(2), nil
		},
		GetBountyFunc: func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
			return testutil.SampleBountyRecord(id.Int64(), "0x1111111111111111111111111111111111111111"), nil
		},
	}
	aggregator := newTestAggregator(quinty, &testutil.MockQuestGateway{}, &testutil.MockDisputeGateway{})

	require.NoError(t, aggregator.ReloadAll(ctx))
	before := aggregator.Snapshot()

	require.NoError(t, aggregator.TopUpBounties(ctx))
	require.Same(t, before, aggregator.Snapshot())
}

func stripBountyTimes(bounties []entity.Bounty) []entity.Bounty {
	out := append([]entity.Bounty{}, bounties...)
	for i := range out {
		out[i].Base = entity.Base{ID: out[i].Base.ID}
		out[i].Submissions = append([]entity.BountySubmission{}, out[i].Submissions...)
		for j := range out[i].Submissions {
			out[i].Submissions[j].Base = entity.Base{ID: out[i].Submissions[j].Base.ID}
		}
	}

	return out
}

func stripQuestTimes(quests []entity.Quest) []entity.Quest {
	out := append([]entity.Quest{}, quests...)
	for i := range out {
		out[i].Base = entity.Base{ID: out[i].Base.ID}
		out[i].Entries = append([]entity.QuestEntry{}, out[i].Entries...)
		for j := range out[i].Entries {
			out[i].Entries[j].Base = entity.Base{ID: out[i].Entries[j].Base.ID}
		}
	}

	return out
}
