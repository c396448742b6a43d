package model

var (
	ChainEventTopic         = "CHAIN_EVENT"
	ReceiptTransactionTopic = "RECEIPT_TRANSACTION"
)
