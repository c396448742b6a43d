package repository

import (
	"context"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByWalletAddress(ctx context.Context, address string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByWalletAddress(ctx context.Context, address string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "wallet_address = ?", address).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "name = ?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Updates(data).Error
}
