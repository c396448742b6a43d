package entity

// OAuth2 links a verified social account (X/Twitter) to a user.
type OAuth2 struct {
	UserID        string `gorm:"primaryKey"`
	User          User   `gorm:"foreignKey:UserID"`
	Service       string `gorm:"primaryKey"`
	ServiceUserID string `gorm:"unique"`
	Username      string
}
