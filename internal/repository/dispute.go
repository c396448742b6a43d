package repository

import (
	"context"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type DisputeRepository interface {
	ReplaceAll(ctx context.Context, disputes []entity.Dispute, votes []entity.DisputeVote) error
	Upsert(ctx context.Context, dispute *entity.Dispute, votes []entity.DisputeVote) error
	GetList(ctx context.Context, offset, limit int) ([]entity.Dispute, error)
	GetByOnChainID(ctx context.Context, onChainID int64) (*entity.Dispute, error)
	GetByBountyOnChainID(ctx context.Context, bountyOnChainID int64) ([]entity.Dispute, error)
}

type disputeRepository struct{}

func NewDisputeRepository() *disputeRepository {
	return &disputeRepository{}
}

func (r *disputeRepository) ReplaceAll(
	ctx context.Context,
	disputes []entity.Dispute,
	votes []entity.DisputeVote,
) error {
	if err := xcontext.DB(ctx).Unscoped().
		Where("1 = 1").Delete(&entity.DisputeVote{}).Error; err != nil {
		return err
	}

	if err := xcontext.DB(ctx).Unscoped().
		Where("1 = 1").Delete(&entity.Dispute{}).Error; err != nil {
		return err
	}

	if len(disputes) > 0 {
		if err := xcontext.DB(ctx).Omit("Votes").Create(disputes).Error; err != nil {
			return err
		}
	}

	if len(votes) > 0 {
		if err := xcontext.DB(ctx).Create(votes).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *disputeRepository) Upsert(
	ctx context.Context,
	dispute *entity.Dispute,
	votes []entity.DisputeVote,
) error {
	err := xcontext.DB(ctx).Omit("Votes").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "on_chain_id"}},
		UpdateAll: true,
	}).Create(dispute).Error
	if err != nil {
		return err
	}

	if err := xcontext.DB(ctx).Unscoped().
		Where("dispute_on_chain_id = ?", dispute.OnChainID).
		Delete(&entity.DisputeVote{}).Error; err != nil {
		return err
	}

	if len(votes) > 0 {
		if err := xcontext.DB(ctx).Create(votes).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *disputeRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Dispute, error) {
	tx := xcontext.DB(ctx).Model(&entity.Dispute{}).
		Preload("Votes").
		Order("on_chain_id DESC").
		Offset(offset)

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var result []entity.Dispute
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *disputeRepository) GetByOnChainID(ctx context.Context, onChainID int64) (*entity.Dispute, error) {
	var result entity.Dispute
	err := xcontext.DB(ctx).
		Preload("Votes").
		Take(&result, "on_chain_id = ?", onChainID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *disputeRepository) GetByBountyOnChainID(ctx context.Context, bountyOnChainID int64) ([]entity.Dispute, error) {
	var result []entity.Dispute
	err := xcontext.DB(ctx).
		Preload("Votes").
		Order("on_chain_id DESC").
		Find(&result, "bounty_on_chain_id = ?", bountyOnChainID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
