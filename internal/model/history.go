package model

const (
	TransactionTypeBountyCreated   = "bounty_created"
	TransactionTypeBountySubmitted = "bounty_submitted"
	TransactionTypeBountyWon       = "bounty_won"
	TransactionTypeQuestCreated    = "quest_created"
	TransactionTypeQuestEntered    = "quest_entered"

	ContractTypeBounty = "bounty"
	ContractTypeQuest  = "quest"
)

// Transaction is a synthetic history record cross-referenced from the
// read-model for one wallet. It has no on-chain identity of its own.
type Transaction struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	ContractType string `json:"contract_type"`
	ItemID       int64  `json:"item_id"`
	Amount       string `json:"amount,omitempty"`
	Timestamp    int64  `json:"timestamp"`
	Status       string `json:"status"`
	Description  string `json:"description,omitempty"`
}

type GetHistoryRequest struct {
	Address string `json:"address"`
}

type GetHistoryResponse struct {
	Transactions []Transaction `json:"transactions,omitempty"`
}
