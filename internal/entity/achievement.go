package entity

// Achievement records an AchievementUnlocked event for a wallet. The badge
// token is soulbound, so a row is never updated after creation.
type Achievement struct {
	Base

	UserAddress string `gorm:"index:idx_achievement_user_token,unique"`
	TokenID     int64  `gorm:"index:idx_achievement_user_token,unique"`
	Name        string
	UnlockedAt  int64
}
