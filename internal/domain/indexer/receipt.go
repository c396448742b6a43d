package indexer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/pubsub"
	"github.com/quinty-io/backend/pkg/xcontext"
	"github.com/quinty-io/backend/pkg/xredis"
)

// ReceiptTracker polls the chain for receipts of transactions users asked us
// to follow, flips their status in the database, and publishes the result so
// the api process can push it to the waiting browser.
type ReceiptTracker struct {
	client      chain.Caller
	redisClient xredis.Client
	txRepo      repository.BlockChainTransactionRepository
	publisher   pubsub.Publisher
}

func NewReceiptTracker(
	client chain.Caller,
	redisClient xredis.Client,
	txRepo repository.BlockChainTransactionRepository,
	publisher pubsub.Publisher,
) *ReceiptTracker {
	return &ReceiptTracker{
		client:      client,
		redisClient: redisClient,
		txRepo:      txRepo,
		publisher:   publisher,
	}
}

func redisKeyPendingTx(chainName, txHash string) string {
	return "pending_tx:" + chainName + ":" + txHash
}

// Track registers a transaction hash for receipt polling.
func (t *ReceiptTracker) Track(ctx context.Context, txHash, sender, action string) error {
	chainName := xcontext.Configs(ctx).Blockchain.Chain
	err := t.txRepo.CreateTransaction(ctx, &entity.BlockchainTransaction{
		Base:   entity.Base{ID: uuid.NewString()},
		Chain:  chainName,
		TxHash: txHash,
		Sender: sender,
		Action: action,
		Status: entity.BlockchainTransactionStatusTypeInProgress,
	})
	if err != nil {
		return err
	}

	if err := t.redisClient.Set(ctx, redisKeyPendingTx(chainName, txHash), sender); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set pending tx %s to redis: %v", txHash, err)
	}

	return nil
}

func (t *ReceiptTracker) Start(ctx context.Context) {
	frequency := xcontext.Configs(ctx).Blockchain.ScanReceiptFrequency
	if frequency == 0 {
		frequency = 5 * time.Second
	}

	for {
		t.scanOnce(ctx)
		time.Sleep(frequency)
	}
}

func (t *ReceiptTracker) scanOnce(ctx context.Context) {
	chainName := xcontext.Configs(ctx).Blockchain.Chain
	pendings, err := t.txRepo.GetInProgress(ctx, chainName)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get in-progress txs of chain %s: %v", chainName, err)
		return
	}

	for _, pending := range pendings {
		receipt, err := t.client.TransactionReceipt(ctx, common.HexToHash(pending.TxHash))
		if err != nil {
			// Not mined yet, keep it pending until the next scan.
			continue
		}

		status := entity.BlockchainTransactionStatusTypeSuccess
		if receipt.Status == 0 {
			status = entity.BlockchainTransactionStatusTypeFailure
		}

		err = t.txRepo.UpdateByTxHash(ctx, pending.TxHash, chainName,
			&entity.BlockchainTransaction{Status: status})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update status of tx %s: %v", pending.TxHash, err)
			continue
		}

		if err := t.redisClient.Del(ctx, redisKeyPendingTx(chainName, pending.TxHash)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot del pending tx %s from redis: %v", pending.TxHash, err)
		}

		t.publishReceipt(ctx, &pending, receipt.Status, receipt.BlockNumber.Int64())
	}
}

func (t *ReceiptTracker) publishReceipt(
	ctx context.Context,
	tx *entity.BlockchainTransaction,
	receiptStatus uint64,
	blockHeight int64,
) {
	b, err := json.Marshal(model.ReceiptMessage{
		ReceiptStatus: receiptStatus,
		TxHash:        tx.TxHash,
		BlockHeight:   blockHeight,
		Timestamp:     time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to marshal receipt of tx %s: %v", tx.TxHash, err)
		return
	}

	err = t.publisher.Publish(ctx, model.ReceiptTransactionTopic, &pubsub.Pack{
		Key: []byte(tx.TxHash),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to publish receipt of tx %s: %v", tx.TxHash, err)
	}
}
