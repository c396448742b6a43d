package entity

type Dispute struct {
	Base

	OnChainID       int64 `gorm:"uniqueIndex"`
	BountyOnChainID int64 `gorm:"index"`
	IsExpiry        bool
	Amount          string
	VotingEnd       int64
	VoteCount       int64
	Resolved        bool

	Votes []DisputeVote `gorm:"foreignKey:DisputeOnChainID;references:OnChainID"`
}

type DisputeVote struct {
	Base

	DisputeOnChainID int64 `gorm:"index:idx_dispute_vote,unique"`
	VoteIndex        int64 `gorm:"index:idx_dispute_vote,unique"`
	Voter            string
	Stake            string
	RankedSubIds     Array[int64]
}
