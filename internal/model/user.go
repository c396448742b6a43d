package model

type User struct {
	ID            string `json:"id,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	IsNewUser     bool   `json:"is_new_user,omitempty"`
}

type UserStats struct {
	BountiesCreated int64 `json:"bounties_created"`
	Submissions     int64 `json:"submissions"`
	Wins            int64 `json:"wins"`
}

type Achievement struct {
	TokenID    int64  `json:"token_id"`
	Name       string `json:"name,omitempty"`
	UnlockedAt int64  `json:"unlocked_at,omitempty"`
}

type GetUserProfileRequest struct {
	Address string `json:"address"`
}

type GetUserProfileResponse struct {
	Address      string        `json:"address"`
	Stats        UserStats     `json:"stats"`
	Achievements []Achievement `json:"achievements,omitempty"`
	TokenIds     []int64       `json:"token_ids,omitempty"`
}

type GetUsernameRequest struct {
	Address string `json:"address"`
}

type GetUsernameResponse struct {
	Username string `json:"username"`
}

type GetMeRequest struct{}

type GetMeResponse User

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type UpdateProfileResponse struct{}

type LogoutRequest struct{}

type LogoutResponse struct{}
