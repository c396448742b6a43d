package entity

import (
	"context"

	"github.com/quinty-io/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&OAuth2{},
		&Bounty{},
		&BountySubmission{},
		&Quest{},
		&QuestEntry{},
		&Dispute{},
		&DisputeVote{},
		&Achievement{},
		&BlockchainTransaction{},
	)
}
