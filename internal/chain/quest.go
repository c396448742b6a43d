package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type QuestRecord struct {
	ID              int64
	Creator         common.Address
	Title           string
	Description     string
	TotalAmount     *big.Int
	PerQualifier    *big.Int
	MaxQualifiers   *big.Int
	QualifiersCount *big.Int
	Deadline        *big.Int
	CreatedAt       *big.Int
	Resolved        bool
	Cancelled       bool
	Requirements    []string
	ImageUrl        string
}

type EntryRecord struct {
	Solver       common.Address
	IpfsProofCid string
	Timestamp    *big.Int
	Status       uint8
	Feedback     string
}

type QuestGateway interface {
	Address() common.Address
	QuestCounter(ctx context.Context) (*big.Int, error)
	GetQuest(ctx context.Context, id *big.Int) (*QuestRecord, error)
	GetEntry(ctx context.Context, id, index *big.Int) (*EntryRecord, error)
}

type questGateway struct {
	contractGateway
}

func NewQuestGateway(caller Caller, address string) (*questGateway, error) {
	gateway, err := newContractGateway(caller, address, questAbiJSON)
	if err != nil {
		return nil, err
	}

	return &questGateway{contractGateway: gateway}, nil
}

func (g *questGateway) QuestCounter(ctx context.Context) (*big.Int, error) {
	values, err := g.call(ctx, "questCounter")
	if err != nil {
		return nil, err
	}

	counter, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("invalid questCounter output %T", values[0])
	}

	return counter, nil
}

func (g *questGateway) GetQuest(ctx context.Context, id *big.Int) (*QuestRecord, error) {
	values, err := g.call(ctx, "getQuest", id)
	if err != nil {
		return nil, err
	}

	if len(values) != 13 {
		return nil, fmt.Errorf("invalid getQuest output length %d", len(values))
	}

	return &QuestRecord{
		ID:              id.Int64(),
		Creator:         values[0].(common.Address),
		Title:           values[1].(string),
		Description:     values[2].(string),
		TotalAmount:     values[3].(*big.Int),
		PerQualifier:    values[4].(*big.Int),
		MaxQualifiers:   values[5].(*big.Int),
		QualifiersCount: values[6].(*big.Int),
		Deadline:        values[7].(*big.Int),
		CreatedAt:       values[8].(*big.Int),
		Resolved:        values[9].(bool),
		Cancelled:       values[10].(bool),
		Requirements:    values[11].([]string),
		ImageUrl:        values[12].(string),
	}, nil
}

func (g *questGateway) GetEntry(ctx context.Context, id, index *big.Int) (*EntryRecord, error) {
	values, err := g.call(ctx, "getEntry", id, index)
	if err != nil {
		return nil, err
	}

	if len(values) != 5 {
		return nil, fmt.Errorf("invalid getEntry output length %d", len(values))
	}

	return &EntryRecord{
		Solver:       values[0].(common.Address),
		IpfsProofCid: values[1].(string),
		Timestamp:    values[2].(*big.Int),
		Status:       values[3].(uint8),
		Feedback:     values[4].(string),
	}, nil
}
