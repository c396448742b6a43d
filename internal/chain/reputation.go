package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type StatsRecord struct {
	BountiesCreated *big.Int
	Submissions     *big.Int
	Wins            *big.Int
}

type ReputationGateway interface {
	Address() common.Address
	StatsOf(ctx context.Context, user common.Address) (*StatsRecord, error)
	AchievementsOf(ctx context.Context, user common.Address) ([]*big.Int, error)
}

type reputationGateway struct {
	contractGateway
}

func NewReputationGateway(caller Caller, address string) (*reputationGateway, error) {
	gateway, err := newContractGateway(caller, address, reputationAbiJSON)
	if err != nil {
		return nil, err
	}

	return &reputationGateway{contractGateway: gateway}, nil
}

func (g *reputationGateway) StatsOf(ctx context.Context, user common.Address) (*StatsRecord, error) {
	values, err := g.call(ctx, "statsOf", user)
	if err != nil {
		return nil, err
	}

	if len(values) != 3 {
		return nil, fmt.Errorf("invalid statsOf output length %d", len(values))
	}

	return &StatsRecord{
		BountiesCreated: values[0].(*big.Int),
		Submissions:     values[1].(*big.Int),
		Wins:            values[2].(*big.Int),
	}, nil
}

func (g *reputationGateway) AchievementsOf(ctx context.Context, user common.Address) ([]*big.Int, error) {
	values, err := g.call(ctx, "achievementsOf", user)
	if err != nil {
		return nil, err
	}

	tokenIds, ok := values[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("invalid achievementsOf output %T", values[0])
	}

	return tokenIds, nil
}
