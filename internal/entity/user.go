package entity

type User struct {
	Base
	WalletAddress string `gorm:"uniqueIndex"`
	Name          string `gorm:"unique"`
	Role          string `gorm:"default:USER"`
	IsNewUser     bool
}

const (
	SuperAdminRole = "SUPER_ADMIN"
	AdminRole      = "ADMIN"
	UserRole       = "USER"
)
