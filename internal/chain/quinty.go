package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type BountyRecord struct {
	ID              int64
	Creator         common.Address
	MetadataCid     string
	Token           common.Address
	TotalAmount     *big.Int
	Prizes          []*big.Int
	OpenDeadline    *big.Int
	JudgingDeadline *big.Int
	SlashPercent    *big.Int
	Status          uint8
	SubmissionCount *big.Int
	TotalDeposits   *big.Int
	Winners         []common.Address
}

type SubmissionRecord struct {
	Submitter common.Address
	IpfsCid   string
	Deposit   *big.Int
	Timestamp *big.Int
}

type QuintyGateway interface {
	Address() common.Address
	BountyCounter(ctx context.Context) (*big.Int, error)
	GetBounty(ctx context.Context, id *big.Int) (*BountyRecord, error)
	GetSubmission(ctx context.Context, id, index *big.Int) (*SubmissionRecord, error)
}

type quintyGateway struct {
	contractGateway
}

func NewQuintyGateway(caller Caller, address string) (*quintyGateway, error) {
	gateway, err := newContractGateway(caller, address, quintyAbiJSON)
	if err != nil {
		return nil, err
	}

	return &quintyGateway{contractGateway: gateway}, nil
}

func (g *quintyGateway) BountyCounter(ctx context.Context) (*big.Int, error) {
	values, err := g.call(ctx, "bountyCounter")
	if err != nil {
		return nil, err
	}

	counter, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("invalid bountyCounter output %T", values[0])
	}

	return counter, nil
}

func (g *quintyGateway) GetBounty(ctx context.Context, id *big.Int) (*BountyRecord, error) {
	values, err := g.call(ctx, "getBounty", id)
	if err != nil {
		return nil, err
	}

	if len(values) != 12 {
		return nil, fmt.Errorf("invalid getBounty output length %d", len(values))
	}

	return &BountyRecord{
		ID:              id.Int64(),
		Creator:         values[0].(common.Address),
		MetadataCid:     values[1].(string),
		Token:           values[2].(common.Address),
		TotalAmount:     values[3].(*big.Int),
		Prizes:          values[4].([]*big.Int),
		OpenDeadline:    values[5].(*big.Int),
		JudgingDeadline: values[6].(*big.Int),
		SlashPercent:    values[7].(*big.Int),
		Status:          values[8].(uint8),
		SubmissionCount: values[9].(*big.Int),
		TotalDeposits:   values[10].(*big.Int),
		Winners:         values[11].([]common.Address),
	}, nil
}

func (g *quintyGateway) GetSubmission(ctx context.Context, id, index *big.Int) (*SubmissionRecord, error) {
	values, err := g.call(ctx, "getSubmission", id, index)
	if err != nil {
		return nil, err
	}

	if len(values) != 4 {
		return nil, fmt.Errorf("invalid getSubmission output length %d", len(values))
	}

	return &SubmissionRecord{
		Submitter: values[0].(common.Address),
		IpfsCid:   values[1].(string),
		Deposit:   values[2].(*big.Int),
		Timestamp: values[3].(*big.Int),
	}, nil
}
