package testutil

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quinty-io/backend/internal/chain"
)

type MockQuintyGateway struct {
	AddressValue      common.Address
	BountyCounterFunc func(ctx context.Context) (*big.Int, error)
	GetBountyFunc     func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error)
	GetSubmissionFunc func(ctx context.Context, id, index *big.Int) (*chain.SubmissionRecord, error)
}

func (m *MockQuintyGateway) Address() common.Address {
	return m.AddressValue
}

func (m *MockQuintyGateway) BountyCounter(ctx context.Context) (*big.Int, error) {
	if m.BountyCounterFunc != nil {
		return m.BountyCounterFunc(ctx)
	}

	return big.NewInt(0), nil
}

func (m *MockQuintyGateway) GetBounty(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
	if m.GetBountyFunc != nil {
		return m.GetBountyFunc(ctx, id)
	}

	return nil, errors.New("not implemented")
}

func (m *MockQuintyGateway) GetSubmission(ctx context.Context, id, index *big.Int) (*chain.SubmissionRecord, error) {
	if m.GetSubmissionFunc != nil {
		return m.GetSubmissionFunc(ctx, id, index)
	}

	return nil, errors.New("not implemented")
}

type MockQuestGateway struct {
	AddressValue     common.Address
	QuestCounterFunc func(ctx context.Context) (*big.Int, error)
	GetQuestFunc     func(ctx context.Context, id *big.Int) (*chain.QuestRecord, error)
	GetEntryFunc     func(ctx context.Context, id, index *big.Int) (*chain.EntryRecord, error)
}

func (m *MockQuestGateway) Address() common.Address {
	return m.AddressValue
}

func (m *MockQuestGateway) QuestCounter(ctx context.Context) (*big.Int, error) {
	if m.QuestCounterFunc != nil {
		return m.QuestCounterFunc(ctx)
	}

	return big.NewInt(0), nil
}

func (m *MockQuestGateway) GetQuest(ctx context.Context, id *big.Int) (*chain.QuestRecord, error) {
	if m.GetQuestFunc != nil {
		return m.GetQuestFunc(ctx, id)
	}

	return nil, errors.New("not implemented")
}

func (m *MockQuestGateway) GetEntry(ctx context.Context, id, index *big.Int) (*chain.EntryRecord, error) {
	if m.GetEntryFunc != nil {
		return m.GetEntryFunc(ctx, id, index)
	}

	return nil, errors.New("not implemented")
}

type MockDisputeGateway struct {
	AddressValue       common.Address
	DisputeCounterFunc func(ctx context.Context) (*big.Int, error)
	GetDisputeFunc     func(ctx context.Context, id *big.Int) (*chain.DisputeRecord, error)
	GetVoteFunc        func(ctx context.Context, id, index *big.Int) (*chain.VoteRecord, error)
}

func (m *MockDisputeGateway) Address() common.Address {
	return m.AddressValue
}

func (m *MockDisputeGateway) DisputeCounter(ctx context.Context) (*big.Int, error) {
	if m.DisputeCounterFunc != nil {
		return m.DisputeCounterFunc(ctx)
	}

	return big.NewInt(0), nil
}

func (m *MockDisputeGateway) GetDispute(ctx context.Context, id *big.Int) (*chain.DisputeRecord, error) {
	if m.GetDisputeFunc != nil {
		return m.GetDisputeFunc(ctx, id)
	}

	return nil, errors.New("not implemented")
}

func (m *MockDisputeGateway) GetVote(ctx context.Context, id, index *big.Int) (*chain.VoteRecord, error) {
	if m.GetVoteFunc != nil {
		return m.GetVoteFunc(ctx, id, index)
	}

	return nil, errors.New("not implemented")
}

type MockReputationGateway struct {
	AddressValue       common.Address
	StatsOfFunc        func(ctx context.Context, user common.Address) (*chain.StatsRecord, error)
	AchievementsOfFunc func(ctx context.Context, user common.Address) ([]*big.Int, error)
}

func (m *MockReputationGateway) Address() common.Address {
	return m.AddressValue
}

func (m *MockReputationGateway) StatsOf(ctx context.Context, user common.Address) (*chain.StatsRecord, error) {
	if m.StatsOfFunc != nil {
		return m.StatsOfFunc(ctx, user)
	}

	return &chain.StatsRecord{
		BountiesCreated: big.NewInt(0),
		Submissions:     big.NewInt(0),
		Wins:            big.NewInt(0),
	}, nil
}

func (m *MockReputationGateway) AchievementsOf(ctx context.Context, user common.Address) ([]*big.Int, error) {
	if m.AchievementsOfFunc != nil {
		return m.AchievementsOfFunc(ctx, user)
	}

	return nil, nil
}
