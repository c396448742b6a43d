package model

type Vote struct {
	Voter        string  `json:"voter"`
	Stake        string  `json:"stake"`
	RankedSubIds []int64 `json:"ranked_sub_ids,omitempty"`
}

type Dispute struct {
	ID        int64  `json:"id"`
	BountyID  int64  `json:"bounty_id"`
	IsExpiry  bool   `json:"is_expiry"`
	Amount    string `json:"amount"`
	VotingEnd int64  `json:"voting_end"`
	VoteCount int64  `json:"vote_count"`
	Resolved  bool   `json:"resolved"`
	Votes     []Vote `json:"votes,omitempty"`
}

type GetListDisputeRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetListDisputeResponse struct {
	Disputes []Dispute `json:"disputes,omitempty"`
}

type GetDisputeRequest struct {
	ID int64 `json:"id"`
}

type GetDisputeResponse Dispute

type PrepareVoteRequest struct {
	DisputeID    int64   `json:"dispute_id"`
	Voter        string  `json:"voter"`
	RankedSubIds []int64 `json:"ranked_sub_ids"`
}

type PrepareVoteResponse struct{}
