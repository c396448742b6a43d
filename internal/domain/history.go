package domain

import (
	"context"
	"fmt"
	"sort"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/ethutil"
	"github.com/quinty-io/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type HistoryDomain interface {
	GetHistory(ctx context.Context, req *model.GetHistoryRequest) (*model.GetHistoryResponse, error)
}

type historyDomain struct {
	bountyRepo repository.BountyRepository
	questRepo  repository.QuestRepository
}

func NewHistoryDomain(
	bountyRepo repository.BountyRepository,
	questRepo repository.QuestRepository,
) *historyDomain {
	return &historyDomain{bountyRepo: bountyRepo, questRepo: questRepo}
}

// GetHistory cross-references every bounty and quest against one wallet
// address and builds its synthetic transaction list, newest first. This is a
// full scan on purpose, the entity universe stays small enough that an index
// is not worth carrying.
func (d *historyDomain) GetHistory(
	ctx context.Context, req *model.GetHistoryRequest,
) (*model.GetHistoryResponse, error) {
	if req.Address == "" {
		return &model.GetHistoryResponse{Transactions: []model.Transaction{}}, nil
	}

	address := ethutil.NormalizeAddress(req.Address)

	bounties, err := d.bountyRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load bounties for history: %v", err)
		return nil, errorx.Unknown
	}

	quests, err := d.questRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load quests for history: %v", err)
		return nil, errorx.Unknown
	}

	transactions := []model.Transaction{}
	for i := range bounties {
		transactions = append(transactions, d.bountyTransactions(ctx, address, &bounties[i])...)
	}

	for i := range quests {
		transactions = append(transactions, d.questTransactions(ctx, address, &quests[i])...)
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		if transactions[i].Timestamp != transactions[j].Timestamp {
			return transactions[i].Timestamp > transactions[j].Timestamp
		}
		return transactions[i].ItemID > transactions[j].ItemID
	})

	return &model.GetHistoryResponse{Transactions: transactions}, nil
}

func (d *historyDomain) bountyTransactions(
	ctx context.Context, address string, bounty *entity.Bounty,
) []model.Transaction {
	result := []model.Transaction{}

	if bounty.Creator == address {
		result = append(result, model.Transaction{
			ID:           xcontext.SnowFlake(ctx).Generate().String(),
			Type:         model.TransactionTypeBountyCreated,
			ContractType: model.ContractTypeBounty,
			ItemID:       bounty.OnChainID,
			Amount:       bounty.TotalAmount,
			Timestamp:    bounty.OpenDeadline,
			Status:       string(bounty.Status),
			Description:  fmt.Sprintf("Created bounty #%d: %s", bounty.OnChainID, bounty.Title),
		})
	}

	for _, sub := range bounty.Submissions {
		if sub.Submitter != address {
			continue
		}

		result = append(result, model.Transaction{
			ID:           xcontext.SnowFlake(ctx).Generate().String(),
			Type:         model.TransactionTypeBountySubmitted,
			ContractType: model.ContractTypeBounty,
			ItemID:       bounty.OnChainID,
			Amount:       sub.Deposit,
			Timestamp:    sub.Timestamp,
			Status:       string(bounty.Status),
			Description:  fmt.Sprintf("Submitted to bounty #%d", bounty.OnChainID),
		})
	}

	if bounty.Status == entity.BountyResolved && slices.Contains(bounty.Winners, address) {
		result = append(result, model.Transaction{
			ID:           xcontext.SnowFlake(ctx).Generate().String(),
			Type:         model.TransactionTypeBountyWon,
			ContractType: model.ContractTypeBounty,
			ItemID:       bounty.OnChainID,
			Amount:       bounty.TotalAmount,
			Timestamp:    bounty.JudgingDeadline,
			Status:       string(bounty.Status),
			Description:  fmt.Sprintf("Won bounty #%d: %s", bounty.OnChainID, bounty.Title),
		})
	}

	return result
}

func (d *historyDomain) questTransactions(
	ctx context.Context, address string, quest *entity.Quest,
) []model.Transaction {
	result := []model.Transaction{}

	status := "active"
	switch {
	case quest.Resolved:
		status = "resolved"
	case quest.Cancelled:
		status = "cancelled"
	}

	if quest.Creator == address {
		result = append(result, model.Transaction{
			ID:           xcontext.SnowFlake(ctx).Generate().String(),
			Type:         model.TransactionTypeQuestCreated,
			ContractType: model.ContractTypeQuest,
			ItemID:       quest.OnChainID,
			Amount:       quest.TotalAmount,
			Timestamp:    quest.ChainCreatedAt,
			Status:       status,
			Description:  fmt.Sprintf("Created quest #%d: %s", quest.OnChainID, quest.Title),
		})
	}

	for _, entry := range quest.Entries {
		if entry.Solver != address {
			continue
		}

		result = append(result, model.Transaction{
			ID:           xcontext.SnowFlake(ctx).Generate().String(),
			Type:         model.TransactionTypeQuestEntered,
			ContractType: model.ContractTypeQuest,
			ItemID:       quest.OnChainID,
			Amount:       quest.PerQualifier,
			Timestamp:    entry.Timestamp,
			Status:       string(entry.Status),
			Description:  fmt.Sprintf("Entered quest #%d", quest.OnChainID),
		})
	}

	return result
}
