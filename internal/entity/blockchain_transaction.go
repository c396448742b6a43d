package entity

import (
	"github.com/quinty-io/backend/pkg/enum"
)

type BlockchainTransactionStatusType string

var (
	BlockchainTransactionStatusTypeInProgress = enum.New(BlockchainTransactionStatusType("inprogress"))
	BlockchainTransactionStatusTypeSuccess    = enum.New(BlockchainTransactionStatusType("success"))
	BlockchainTransactionStatusTypeFailure    = enum.New(BlockchainTransactionStatusType("failure"))
)

// BlockchainTransaction tracks a user-submitted transaction hash from
// pending until the watcher finds its receipt.
type BlockchainTransaction struct {
	Base

	Chain  string `gorm:"index:idx_blockchain_transaction_chain_txhash,unique"`
	TxHash string `gorm:"index:idx_blockchain_transaction_chain_txhash,unique"`
	Sender string `gorm:"index"`
	Action string

	Status BlockchainTransactionStatusType
}
