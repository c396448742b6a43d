package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type DisputeRecord struct {
	ID        int64
	BountyID  *big.Int
	IsExpiry  bool
	Amount    *big.Int
	VotingEnd *big.Int
	VoteCount *big.Int
	Resolved  bool
}

type VoteRecord struct {
	Voter        common.Address
	Stake        *big.Int
	RankedSubIds []*big.Int
}

type DisputeGateway interface {
	Address() common.Address
	DisputeCounter(ctx context.Context) (*big.Int, error)
	GetDispute(ctx context.Context, id *big.Int) (*DisputeRecord, error)
	GetVote(ctx context.Context, id, index *big.Int) (*VoteRecord, error)
}

type disputeGateway struct {
	contractGateway
}

func NewDisputeGateway(caller Caller, address string) (*disputeGateway, error) {
	gateway, err := newContractGateway(caller, address, disputeAbiJSON)
	if err != nil {
		return nil, err
	}

	return &disputeGateway{contractGateway: gateway}, nil
}

func (g *disputeGateway) DisputeCounter(ctx context.Context) (*big.Int, error) {
	values, err := g.call(ctx, "disputeCounter")
	if err != nil {
		return nil, err
	}

	counter, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("invalid disputeCounter output %T", values[0])
	}

	return counter, nil
}

func (g *disputeGateway) GetDispute(ctx context.Context, id *big.Int) (*DisputeRecord, error) {
	values, err := g.call(ctx, "getDispute", id)
	if err != nil {
		return nil, err
	}

	if len(values) != 6 {
		return nil, fmt.Errorf("invalid getDispute output length %d", len(values))
	}

	return &DisputeRecord{
		ID:        id.Int64(),
		BountyID:  values[0].(*big.Int),
		IsExpiry:  values[1].(bool),
		Amount:    values[2].(*big.Int),
		VotingEnd: values[3].(*big.Int),
		VoteCount: values[4].(*big.Int),
		Resolved:  values[5].(bool),
	}, nil
}

func (g *disputeGateway) GetVote(ctx context.Context, id, index *big.Int) (*VoteRecord, error) {
	values, err := g.call(ctx, "getVote", id, index)
	if err != nil {
		return nil, err
	}

	if len(values) != 3 {
		return nil, fmt.Errorf("invalid getVote output length %d", len(values))
	}

	return &VoteRecord{
		Voter:        values[0].(common.Address),
		Stake:        values[1].(*big.Int),
		RankedSubIds: values[2].([]*big.Int),
	}, nil
}
