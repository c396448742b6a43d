package model

type TrackTransactionRequest struct {
	TxHash string `json:"tx_hash"`
	Action string `json:"action"`
}

type TrackTransactionResponse struct{}

type GetTransactionRequest struct {
	TxHash string `json:"tx_hash"`
}

type GetTransactionResponse struct {
	TxHash string `json:"tx_hash"`
	Status string `json:"status"`
	Action string `json:"action,omitempty"`
}

type GetMetadataRequest struct {
	Cid string `json:"cid"`
}

type GetMetadataResponse struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements,omitempty"`
	Deliverables []string `json:"deliverables,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Images       []string `json:"images,omitempty"`
	Deadline     int64    `json:"deadline,omitempty"`
	BountyType   string   `json:"bounty_type,omitempty"`
}
