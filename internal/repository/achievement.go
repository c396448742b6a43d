package repository

import (
	"context"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement *entity.Achievement) error
	GetByUserAddress(ctx context.Context, address string) ([]entity.Achievement, error)
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

// Create is idempotent per (user, token). The watcher may see the same
// AchievementUnlocked log twice when block ranges overlap after a restart.
func (r *achievementRepository) Create(ctx context.Context, achievement *entity.Achievement) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_address"}, {Name: "token_id"}},
		DoNothing: true,
	}).Create(achievement).Error
}

func (r *achievementRepository) GetByUserAddress(ctx context.Context, address string) ([]entity.Achievement, error) {
	var result []entity.Achievement
	err := xcontext.DB(ctx).
		Order("token_id ASC").
		Find(&result, "user_address = ?", address).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
