package domain

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newDisputeAggregator(
	ctx context.Context, t *testing.T, record *chain.DisputeRecord, votes []*chain.VoteRecord,
) *indexer.Aggregator {
	dispute := &testutil.MockDisputeGateway{
		DisputeCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(record.ID), nil
		},
		GetDisputeFunc: func(ctx context.Context, id *big.Int) (*chain.DisputeRecord, error) {
			return record, nil
		},
		GetVoteFunc: func(ctx context.Context, id, index *big.Int) (*chain.VoteRecord, error) {
			return votes[index.Int64()], nil
		},
	}

	quinty := &testutil.MockQuintyGateway{}
	quest := &testutil.MockQuestGateway{}
	aggregator := indexer.NewAggregator(
		indexer.NewEntityFetcher(quinty, quest, dispute, nil),
		quinty, quest, dispute,
		repository.NewBountyRepository(),
		repository.NewQuestRepository(),
		repository.NewDisputeRepository(),
		nil,
	)
	require.NoError(t, aggregator.ReloadAll(ctx))

	return aggregator
}

func Test_disputeDomain_PrepareVote(t *testing.T) {
	ctx := testutil.MockContext()

	record := testutil.SampleDisputeRecord(1, 7)
	record.VotingEnd = big.NewInt(time.Now().Add(time.Hour).Unix())
	record.VoteCount = big.NewInt(1)
	votes := []*chain.VoteRecord{{
		Voter:        common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		Stake:        big.NewInt(100),
		RankedSubIds: []*big.Int{big.NewInt(0)},
	}}

	aggregator := newDisputeAggregator(ctx, t, record, votes)
	domain := NewDisputeDomain(aggregator, repository.NewDisputeRepository())

	_, err := domain.PrepareVote(ctx, &model.PrepareVoteRequest{
		DisputeID:    1,
		Voter:        "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		RankedSubIds: []int64{2, 0, 1},
	})
	require.NoError(t, err)
}

func Test_disputeDomain_PrepareVote_DuplicatedRank(t *testing.T) {
	ctx := testutil.MockContext()

	record := testutil.SampleDisputeRecord(1, 7)
	record.VotingEnd = big.NewInt(time.Now().Add(time.Hour).Unix())
	aggregator := newDisputeAggregator(ctx, t, record, nil)
	domain := NewDisputeDomain(aggregator, repository.NewDisputeRepository())

	_, err := domain.PrepareVote(ctx, &model.PrepareVoteRequest{
		DisputeID:    1,
		Voter:        "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		RankedSubIds: []int64{2, 0, 2},
	})
	require.ErrorContains(t, err, "Duplicated submission 2 in ranking")
}

func Test_disputeDomain_PrepareVote_AlreadyVoted(t *testing.T) {
	ctx := testutil.MockContext()

	record := testutil.SampleDisputeRecord(1, 7)
	record.VotingEnd = big.NewInt(time.Now().Add(time.Hour).Unix())
	record.VoteCount = big.NewInt(1)
	votes := []*chain.VoteRecord{{
		Voter:        common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		Stake:        big.NewInt(100),
		RankedSubIds: []*big.Int{big.NewInt(0)},
	}}

	aggregator := newDisputeAggregator(ctx, t, record, votes)
	domain := NewDisputeDomain(aggregator, repository.NewDisputeRepository())

	// Address comparison ignores case.
	_, err := domain.PrepareVote(ctx, &model.PrepareVoteRequest{
		DisputeID:    1,
		Voter:        "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		RankedSubIds: []int64{0},
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}

func Test_disputeDomain_PrepareVote_VotingEnded(t *testing.T) {
	ctx := testutil.MockContext()

	record := testutil.SampleDisputeRecord(1, 7)
	record.VotingEnd = big.NewInt(time.Now().Add(-time.Hour).Unix())
	aggregator := newDisputeAggregator(ctx, t, record, nil)
	domain := NewDisputeDomain(aggregator, repository.NewDisputeRepository())

	_, err := domain.PrepareVote(ctx, &model.PrepareVoteRequest{
		DisputeID:    1,
		Voter:        "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		RankedSubIds: []int64{0},
	})
	require.ErrorContains(t, err, "has ended")
}
