package entity

import (
	"fmt"

	"github.com/quinty-io/backend/pkg/enum"
)

type QuestEntryStatusType string

var (
	QuestEntryPending  = enum.New(QuestEntryStatusType("pending"))
	QuestEntryApproved = enum.New(QuestEntryStatusType("approved"))
	QuestEntryRejected = enum.New(QuestEntryStatusType("rejected"))
)

func QuestEntryStatusFromChain(value uint8) (QuestEntryStatusType, error) {
	switch value {
	case 0:
		return QuestEntryPending, nil
	case 1:
		return QuestEntryApproved, nil
	case 2:
		return QuestEntryRejected, nil
	default:
		return "", fmt.Errorf("unmapped entry status %d", value)
	}
}

// Quest is a read-model projection of one airdrop-style quest campaign.
// Resolved and Cancelled are mutually exclusive terminal flags, enforced by
// the contract and asserted by the fetcher.
type Quest struct {
	Base

	OnChainID       int64 `gorm:"uniqueIndex"`
	Creator         string
	Title           string
	Description     []byte `gorm:"type:longtext"`
	TotalAmount     string
	PerQualifier    string
	MaxQualifiers   int64
	QualifiersCount int64
	Deadline        int64
	ChainCreatedAt  int64
	Resolved        bool
	Cancelled       bool
	Requirements    Array[string]
	ImageUrl        string

	Entries []QuestEntry `gorm:"foreignKey:QuestOnChainID;references:OnChainID"`
}

type QuestEntry struct {
	Base

	QuestOnChainID int64 `gorm:"index:idx_quest_entry,unique"`
	EntryIndex     int64 `gorm:"index:idx_quest_entry,unique"`
	Solver         string
	IpfsProofCid   string
	Timestamp      int64
	Status         QuestEntryStatusType
	Feedback       string
}
