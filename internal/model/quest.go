package model

type Entry struct {
	Solver       string `json:"solver"`
	IpfsProofCid string `json:"ipfs_proof_cid"`
	Timestamp    int64  `json:"timestamp"`
	Status       string `json:"status"`
	Feedback     string `json:"feedback,omitempty"`
}

type Quest struct {
	ID              int64    `json:"id"`
	Creator         string   `json:"creator"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	TotalAmount     string   `json:"total_amount"`
	PerQualifier    string   `json:"per_qualifier"`
	MaxQualifiers   int64    `json:"max_qualifiers"`
	QualifiersCount int64    `json:"qualifiers_count"`
	Deadline        int64    `json:"deadline"`
	CreatedAt       int64    `json:"created_at"`
	Resolved        bool     `json:"resolved"`
	Cancelled       bool     `json:"cancelled"`
	Requirements    []string `json:"requirements,omitempty"`
	ImageUrl        string   `json:"image_url,omitempty"`
	Entries         []Entry  `json:"entries,omitempty"`
}

type GetListQuestRequest struct {
	Q             string `json:"q"`
	IncludeClosed bool   `json:"include_closed"`
	Offset        int    `json:"offset"`
	Limit         int    `json:"limit"`
}

type GetListQuestResponse struct {
	Quests      []Quest         `json:"quests,omitempty"`
	EntryCounts map[int64]int64 `json:"entry_counts,omitempty"`
}

type GetQuestRequest struct {
	ID int64 `json:"id"`
}

type GetQuestResponse Quest

type PrepareEntryRequest struct {
	QuestID      int64  `json:"quest_id"`
	Solver       string `json:"solver"`
	IpfsProofCid string `json:"ipfs_proof_cid"`
}

type PrepareEntryResponse struct{}
