package domain

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testProofCid      = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	testOtherProofCid = "QmPK1s3pNYLi9ERiq3BDxKa4XosgWwFRQUydHUtz4YgpqB"
)

func newQuestAggregator(
	ctx context.Context, t *testing.T, record *chain.QuestRecord, entries []*chain.EntryRecord,
) *indexer.Aggregator {
	quest := &testutil.MockQuestGateway{
		QuestCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(record.ID), nil
		},
		GetQuestFunc: func(ctx context.Context, id *big.Int) (*chain.QuestRecord, error) {
			return record, nil
		},
		GetEntryFunc: func(ctx context.Context, id, index *big.Int) (*chain.EntryRecord, error) {
			return entries[index.Int64()], nil
		},
	}

	quinty := &testutil.MockQuintyGateway{}
	dispute := &testutil.MockDisputeGateway{}
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

func Test_questDomain_PrepareEntry(t *testing.T) {
	ctx := testutil.MockContext()

	record := testutil.SampleQuestRecord(1, "0xcccccccccccccccccccccccccccccccccccccccc")
	aggregator := newQuestAggregator(ctx, t, record, nil)
	domain := NewQuestDomain(aggregator, repository.NewQuestRepository(), nil)

	_, err := domain.PrepareEntry(ctx, &model.PrepareEntryRequest{
		QuestID:      1,
		Solver:       "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		IpfsProofCid: testProofCid,
	})
	require.NoError(t, err)
}

func Test_questDomain_PrepareEntry_InvalidCid(t *testing.T) {
	ctx := testutil.MockContext()

	record := testutil.SampleQuestRecord(1, "0xcccccccccccccccccccccccccccccccccccccccc")
	aggregator := newQuestAggregator(ctx, t, record, nil)
	domain := NewQuestDomain(aggregator, repository.NewQuestRepository(), nil)

	_, err := domain.PrepareEntry(ctx, &model.PrepareEntryRequest{
		QuestID:      1,
		Solver:       "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		IpfsProofCid: "not-a-cid",
	})
	require.ErrorContains(t, err, "Invalid cid not-a-cid")
}

func Test_questDomain_PrepareEntry_ClosedQuest(t *testing.T) {
	ctx := testutil.MockContext()

	record := testutil.SampleQuestRecord(1, "0xcccccccccccccccccccccccccccccccccccccccc")
	record.Resolved = true
	aggregator := newQuestAggregator(ctx, t, record, nil)
	domain := NewQuestDomain(aggregator, repository.NewQuestRepository(), nil)

	_, err := domain.PrepareEntry(ctx, &model.PrepareEntryRequest{
		QuestID:      1,
		Solver:       "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		IpfsProofCid: testProofCid,
	})
	require.ErrorContains(t, err, "Quest 1 is closed")
}

func Test_questDomain_PrepareEntry_NoSlotLeft(t *testing.T) {
	ctx := testutil.MockContext()

	record := testutil.SampleQuestRecord(1, "0xcccccccccccccccccccccccccccccccccccccccc")
	record.MaxQualifiers = big.NewInt(1)
	record.QualifiersCount = big.NewInt(1)
	entries := []*chain.EntryRecord{{
		Solver:       common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
		IpfsProofCid: "QmOther",
		Timestamp:    big.NewInt(1000),
		Status:       1,
	}}

	aggregator := newQuestAggregator(ctx, t, record, entries)
	domain := NewQuestDomain(aggregator, repository.NewQuestRepository(), nil)

	_, err := domain.PrepareEntry(ctx, &model.PrepareEntryRequest{
		QuestID:      1,
		Solver:       "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		IpfsProofCid: testProofCid,
	})
	require.ErrorContains(t, err, "has no qualifier slot left")
}

func Test_questDomain_PrepareEntry_AlreadyEntered(t *testing.T) {
	ctx := testutil.MockContext()

	solver := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	record := testutil.SampleQuestRecord(1, "0xcccccccccccccccccccccccccccccccccccccccc")
	record.QualifiersCount = big.NewInt(1)
	entries := []*chain.EntryRecord{{
		Solver:       common.HexToAddress(solver),
		IpfsProofCid: testProofCid,
		Timestamp:    big.NewInt(1000),
		Status:       0,
	}}

	aggregator := newQuestAggregator(ctx, t, record, entries)
	domain := NewQuestDomain(aggregator, repository.NewQuestRepository(), nil)

	_, err := domain.PrepareEntry(ctx, &model.PrepareEntryRequest{
		QuestID:      1,
		Solver:       solver,
		IpfsProofCid: testOtherProofCid,
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}

func Test_questDomain_PrepareEntry_RejectedEntryCanRetry(t *testing.T) {
	ctx := testutil.MockContext()

	solver := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	record := testutil.SampleQuestRecord(1, "0xcccccccccccccccccccccccccccccccccccccccc")
	record.QualifiersCount = big.NewInt(1)
	entries := []*chain.EntryRecord{{
		Solver:       common.HexToAddress(solver),
		IpfsProofCid: testProofCid,
		Timestamp:    big.NewInt(1000),
		Status:       2,
	}}

	aggregator := newQuestAggregator(ctx, t, record, entries)
	domain := NewQuestDomain(aggregator, repository.NewQuestRepository(), nil)

	_, err := domain.PrepareEntry(ctx, &model.PrepareEntryRequest{
		QuestID:      1,
		Solver:       solver,
		IpfsProofCid: testOtherProofCid,
	})
	require.NoError(t, err)
}
