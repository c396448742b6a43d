package model

type LeaderBoardEntry struct {
	Address     string `json:"address"`
	Name        string `json:"name,omitempty"`
	TotalVolume string `json:"total_volume"`
}

type GetLeaderBoardRequest struct {
	Type string `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderBoardResponse struct {
	Data []LeaderBoardEntry `json:"data,omitempty"`
}
