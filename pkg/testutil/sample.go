package testutil

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quinty-io/backend/internal/chain"
)

// SampleBountyRecord builds a minimal open bounty owned by creator. Fields
// tests care about can be mutated on the returned record.
func SampleBountyRecord(id int64, creator string) *chain.BountyRecord {
	return &chain.BountyRecord{
		ID:              id,
		Creator:         common.HexToAddress(creator),
		MetadataCid:     "",
		Token:           common.HexToAddress("0x0000000000000000000000000000000000000001"),
		TotalAmount:     big.NewInt(1000),
		Prizes:          []*big.Int{big.NewInt(600), big.NewInt(400)},
		OpenDeadline:    big.NewInt(1700000000 + id),
		JudgingDeadline: big.NewInt(1800000000 + id),
		SlashPercent:    big.NewInt(10),
		Status:          0,
		SubmissionCount: big.NewInt(0),
		TotalDeposits:   big.NewInt(0),
	}
}

func SampleQuestRecord(id int64, creator string) *chain.QuestRecord {
	return &chain.QuestRecord{
		ID:              id,
		Creator:         common.HexToAddress(creator),
		Title:           "quest",
		Description:     "description",
		TotalAmount:     big.NewInt(500),
		PerQualifier:    big.NewInt(50),
		MaxQualifiers:   big.NewInt(10),
		QualifiersCount: big.NewInt(0),
		Deadline:        big.NewInt(1900000000 + id),
		CreatedAt:       big.NewInt(1600000000 + id),
	}
}

func SampleDisputeRecord(id, bountyID int64) *chain.DisputeRecord {
	return &chain.DisputeRecord{
		ID:        id,
		BountyID:  big.NewInt(bountyID),
		Amount:    big.NewInt(1000),
		VotingEnd: big.NewInt(1900000000 + id),
		VoteCount: big.NewInt(0),
	}
}
