package repository

import (
	"context"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type GetListQuestFilter struct {
	Q              string
	Creator        string
	IncludeClosed  bool

	Offset int
	Limit  int
}

type QuestRepository interface {
	ReplaceAll(ctx context.Context, quests []entity.Quest, entries []entity.QuestEntry) error
	Upsert(ctx context.Context, quest *entity.Quest, entries []entity.QuestEntry) error
	GetList(ctx context.Context, filter GetListQuestFilter) ([]entity.Quest, error)
	GetAll(ctx context.Context) ([]entity.Quest, error)
	GetByOnChainID(ctx context.Context, onChainID int64) (*entity.Quest, error)
	GetEntries(ctx context.Context, questOnChainID int64) ([]entity.QuestEntry, error)
	Count(ctx context.Context) (int64, error)
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) ReplaceAll(
	ctx context.Context,
	quests []entity.Quest,
	entries []entity.QuestEntry,
) error {
	if err := xcontext.DB(ctx).Unscoped().
		Where("1 = 1").Delete(&entity.QuestEntry{}).Error; err != nil {
		return err
	}

	if err := xcontext.DB(ctx).Unscoped().
		Where("1 = 1").Delete(&entity.Quest{}).Error; err != nil {
		return err
	}

	if len(quests) > 0 {
		if err := xcontext.DB(ctx).Omit("Entries").Create(quests).Error; err != nil {
			return err
		}
	}

	if len(entries) > 0 {
		if err := xcontext.DB(ctx).Create(entries).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *questRepository) Upsert(
	ctx context.Context,
	quest *entity.Quest,
	entries []entity.QuestEntry,
) error {
	err := xcontext.DB(ctx).Omit("Entries").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "on_chain_id"}},
		UpdateAll: true,
	}).Create(quest).Error
	if err != nil {
		return err
	}

	if err := xcontext.DB(ctx).Unscoped().
		Where("quest_on_chain_id = ?", quest.OnChainID).
		Delete(&entity.QuestEntry{}).Error; err != nil {
		return err
	}

	if len(entries) > 0 {
		if err := xcontext.DB(ctx).Create(entries).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *questRepository) GetList(ctx context.Context, filter GetListQuestFilter) ([]entity.Quest, error) {
	tx := xcontext.DB(ctx).Model(&entity.Quest{}).
		Preload("Entries").
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

	if !filter.IncludeClosed {
		tx = tx.Where("resolved = ? AND cancelled = ?", false, false)
	}

	var result []entity.Quest
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetAll(ctx context.Context) ([]entity.Quest, error) {
	var result []entity.Quest
	err := xcontext.DB(ctx).
		Preload("Entries").
		Order("on_chain_id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetByOnChainID(ctx context.Context, onChainID int64) (*entity.Quest, error) {
	var result entity.Quest
	err := xcontext.DB(ctx).
		Preload("Entries").
		Take(&result, "on_chain_id = ?", onChainID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questRepository) GetEntries(ctx context.Context, questOnChainID int64) ([]entity.QuestEntry, error) {
	var result []entity.QuestEntry
	err := xcontext.DB(ctx).
		Order("entry_index ASC").
		Find(&result, "quest_on_chain_id = ?", questOnChainID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Quest{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
