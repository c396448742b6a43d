package repository

import (
	"context"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type GetListBountyFilter struct {
	Q       string
	Creator string
	Status  entity.BountyStatusType

	Offset int
	Limit  int
}

type BountyRepository interface {
	ReplaceAll(ctx context.Context, bounties []entity.Bounty, submissions []entity.BountySubmission) error
	Upsert(ctx context.Context, bounty *entity.Bounty, submissions []entity.BountySubmission) error
	GetList(ctx context.Context, filter GetListBountyFilter) ([]entity.Bounty, error)
	GetAll(ctx context.Context) ([]entity.Bounty, error)
	GetByOnChainID(ctx context.Context, onChainID int64) (*entity.Bounty, error)
	GetSubmissions(ctx context.Context, bountyOnChainID int64) ([]entity.BountySubmission, error)
	GetAllSubmissions(ctx context.Context) ([]entity.BountySubmission, error)
	Count(ctx context.Context) (int64, error)
}

type bountyRepository struct{}

func NewBountyRepository() *bountyRepository {
	return &bountyRepository{}
}

// ReplaceAll swaps the whole bounty read-model for a freshly derived
// snapshot. The caller wraps it in a transaction so readers never observe a
// half-replaced table. Hard delete, the snapshot is re-derivable from chain.
func (r *bountyRepository) ReplaceAll(
	ctx context.Context,
	bounties []entity.Bounty,
	submissions []entity.BountySubmission,
) error {
	if err := xcontext.DB(ctx).Unscoped().
		Where("1 = 1").Delete(&entity.BountySubmission{}).Error; err != nil {
		return err
	}

	if err := xcontext.DB(ctx).Unscoped().
		Where("1 = 1").Delete(&entity.Bounty{}).Error; err != nil {
		return err
	}

	if len(bounties) > 0 {
		if err := xcontext.DB(ctx).Omit("Submissions").Create(bounties).Error; err != nil {
			return err
		}
	}

	if len(submissions) > 0 {
		if err := xcontext.DB(ctx).Create(submissions).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *bountyRepository) Upsert(
	ctx context.Context,
	bounty *entity.Bounty,
	submissions []entity.BountySubmission,
) error {
	err := xcontext.DB(ctx).Omit("Submissions").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "on_chain_id"}},
		UpdateAll: true,
	}).Create(bounty).Error
	if err != nil {
		return err
	}

	if err := xcontext.DB(ctx).Unscoped().
		Where("bounty_on_chain_id = ?", bounty.OnChainID).
		Delete(&entity.BountySubmission{}).Error; err != nil {
		return err
	}

	if len(submissions) > 0 {
		if err := xcontext.DB(ctx).Create(submissions).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *bountyRepository) GetList(ctx context.Context, filter GetListBountyFilter) ([]entity.Bounty, error) {
	tx := xcontext.DB(ctx).Model(&entity.Bounty{}).
		Preload("Submissions").
		Order("on_chain_id DESC").
		Offset(filter.Offset)

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	if filter.Q != "" {
		tx = tx.Where("title LIKE ?", "%"+filter.Q+"%")
	}

	if filter.Creator != "" {
		tx = tx.Where("creator = ?", filter.Creator)
	}

	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}

	var result []entity.Bounty
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *bountyRepository) GetAll(ctx context.Context) ([]entity.Bounty, error) {
	var result []entity.Bounty
	err := xcontext.DB(ctx).
		Preload("Submissions").
		Order("on_chain_id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *bountyRepository) GetByOnChainID(ctx context.Context, onChainID int64) (*entity.Bounty, error) {
	var result entity.Bounty
	err := xcontext.DB(ctx).
		Preload("Submissions").
		Take(&result, "on_chain_id = ?", onChainID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *bountyRepository) GetSubmissions(ctx context.Context, bountyOnChainID int64) ([]entity.BountySubmission, error) {
	var result []entity.BountySubmission
	err := xcontext.DB(ctx).
		Order("submission_index ASC").
		Find(&result, "bounty_on_chain_id = ?", bountyOnChainID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *bountyRepository) GetAllSubmissions(ctx context.Context) ([]entity.BountySubmission, error) {
	var result []entity.BountySubmission
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *bountyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Bounty{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
