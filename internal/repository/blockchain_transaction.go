package repository

import (
	"context"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/pkg/xcontext"
)

type BlockChainTransactionRepository interface {
	CreateTransaction(ctx context.Context, e *entity.BlockchainTransaction) error
	UpdateByTxHash(ctx context.Context, txHash, chain string, data *entity.BlockchainTransaction) error
	GetByTxHash(ctx context.Context, txHash, chain string) (*entity.BlockchainTransaction, error)
	GetInProgress(ctx context.Context, chain string) ([]entity.BlockchainTransaction, error)
}

type blockChainTransactionRepository struct{}

func NewBlockChainTransactionRepository() *blockChainTransactionRepository {
	return &blockChainTransactionRepository{}
}

func (r *blockChainTransactionRepository) CreateTransaction(ctx context.Context, e *entity.BlockchainTransaction) error {
	if err := xcontext.DB(ctx).Model(e).Create(e).Error; err != nil {
		return err
	}
	return nil
}

func (r *blockChainTransactionRepository) UpdateByTxHash(ctx context.Context, txHash, chain string, data *entity.BlockchainTransaction) error {
	return xcontext.DB(ctx).Model(&entity.BlockchainTransaction{}).
		Where("tx_hash = ? AND chain = ?", txHash, chain).
		Updates(data).Error
}

func (r *blockChainTransactionRepository) GetByTxHash(ctx context.Context, txHash, chain string) (*entity.BlockchainTransaction, error) {
	var result entity.BlockchainTransaction
	if err := xcontext.DB(ctx).Take(&result, "tx_hash = ? AND chain = ?", txHash, chain).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *blockChainTransactionRepository) GetInProgress(ctx context.Context, chain string) ([]entity.BlockchainTransaction, error) {
	var result []entity.BlockchainTransaction
	err := xcontext.DB(ctx).Find(&result,
		"chain = ? AND status = ?",
		chain, entity.BlockchainTransactionStatusTypeInProgress).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
