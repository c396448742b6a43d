package entity

import (
	"fmt"

	"github.com/quinty-io/backend/pkg/enum"
)

type BountyStatusType string

var (
	BountyOpen     = enum.New(BountyStatusType("open"))
	BountyJudging  = enum.New(BountyStatusType("judging"))
	BountyResolved = enum.New(BountyStatusType("resolved"))
	BountySlashed  = enum.New(BountyStatusType("slashed"))
)

// BountyStatusFromChain maps the contract-side status integer to its status
// value. The contract enum has exactly four members. An out-of-range integer
// is an error, never a silent "unknown" status.
func BountyStatusFromChain(value uint8) (BountyStatusType, error) {
	switch value {
	case 0:
		return BountyOpen, nil
	case 1:
		return BountyJudging, nil
	case 2:
		return BountyResolved, nil
	case 3:
		return BountySlashed, nil
	default:
		return "", fmt.Errorf("unmapped bounty status %d", value)
	}
}

// ChainValue is the inverse of BountyStatusFromChain.
func (s BountyStatusType) ChainValue() (uint8, error) {
	switch s {
	case BountyOpen:
		return 0, nil
	case BountyJudging:
		return 1, nil
	case BountyResolved:
		return 2, nil
	case BountySlashed:
		return 3, nil
	default:
		return 0, fmt.Errorf("unmapped bounty status %q", string(s))
	}
}

// Bounty is a read-model projection of one on-chain bounty record. Amounts
// are decimal wei strings, timestamps are unix seconds from the contract.
type Bounty struct {
	Base

	OnChainID       int64 `gorm:"uniqueIndex"`
	Creator         string
	Title           string
	Description     []byte `gorm:"type:longtext"`
	MetadataCid     string
	Token           string
	TotalAmount     string
	Prizes          Array[string]
	OpenDeadline    int64
	JudgingDeadline int64
	SlashPercent    int64
	Status          BountyStatusType `gorm:"index"`
	SubmissionCount int64
	TotalDeposits   string
	Winners         Array[string]

	Submissions []BountySubmission `gorm:"foreignKey:BountyOnChainID;references:OnChainID"`
}

type BountySubmission struct {
	Base

	BountyOnChainID int64 `gorm:"index:idx_bounty_submission,unique"`
	SubmissionIndex int64 `gorm:"index:idx_bounty_submission,unique"`
	Submitter       string
	IpfsCid         string
	Deposit         string
	Timestamp       int64
}
