package model

type Submission struct {
	Submitter string `json:"submitter"`
	IpfsCid   string `json:"ipfs_cid"`
	Deposit   string `json:"deposit"`
	Timestamp int64  `json:"timestamp"`
}

type Bounty struct {
	ID              int64        `json:"id"`
	Creator         string       `json:"creator"`
	Title           string       `json:"title,omitempty"`
	Description     string       `json:"description,omitempty"`
	MetadataCid     string       `json:"metadata_cid,omitempty"`
	Token           string       `json:"token"`
	TotalAmount     string       `json:"total_amount"`
	Prizes          []string     `json:"prizes,omitempty"`
	OpenDeadline    int64        `json:"open_deadline"`
	JudgingDeadline int64        `json:"judging_deadline"`
	SlashPercent    int64        `json:"slash_percent"`
	Status          string       `json:"status"`
	SubmissionCount int64        `json:"submission_count"`
	TotalDeposits   string       `json:"total_deposits"`
	Winners         []string     `json:"winners,omitempty"`
	Submissions     []Submission `json:"submissions,omitempty"`
}

type GetListBountyRequest struct {
	Q      string `json:"q"`
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetListBountyResponse struct {
	Bounties []Bounty `json:"bounties,omitempty"`
}

type GetBountyRequest struct {
	ID int64 `json:"id"`
}

type GetBountyResponse Bounty

type CreateBountyDraftRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Deliverables []string `json:"deliverables"`
	Skills       []string `json:"skills"`
	Images       []string `json:"images"`
	Deadline     int64    `json:"deadline"`
	BountyType   string   `json:"bounty_type"`
	Token        string   `json:"token"`
	Prizes       []string `json:"prizes"`
}

type CreateBountyDraftResponse struct {
	MetadataCid string `json:"metadata_cid"`
}
