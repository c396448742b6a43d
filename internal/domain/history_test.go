package domain

import (
	"testing"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_historyDomain_GetHistory(t *testing.T) {
	ctx := testutil.MockContext()
	bountyRepo := repository.NewBountyRepository()
	questRepo := repository.NewQuestRepository()

	me := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	other := "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	err := bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:         entity.Base{ID: "bounty-2"},
		OnChainID:    2,
		Creator:      me,
		Title:        "Logo design",
		TotalAmount:  "100",
		OpenDeadline: 1000,
		Status:       entity.BountyOpen,
	}, nil)
	require.NoError(t, err)

	err = bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:         entity.Base{ID: "bounty-5"},
		OnChainID:    5,
		Creator:      other,
		TotalAmount:  "200",
		OpenDeadline: 1500,
		Status:       entity.BountyOpen,
	}, []entity.BountySubmission{{
		Base:            entity.Base{ID: "bounty-5-sub-0"},
		BountyOnChainID: 5,
		SubmissionIndex: 0,
		Submitter:       me,
		Deposit:         "5",
		Timestamp:       2000,
	}})
	require.NoError(t, err)

	// Entities the address never touched must not appear.
	err = bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:        entity.Base{ID: "bounty-7"},
		OnChainID:   7,
		Creator:     other,
		TotalAmount: "300",
		Status:      entity.BountyResolved,
		Winners:     entity.Array[string]{other},
	}, nil)
	require.NoError(t, err)

	err = questRepo.Upsert(ctx, &entity.Quest{
		Base:      entity.Base{ID: "quest-3"},
		OnChainID: 3,
		Creator:   other,
	}, []entity.QuestEntry{{
		Base:           entity.Base{ID: "quest-3-entry-0"},
		QuestOnChainID: 3,
		EntryIndex:     0,
		Solver:         other,
		Timestamp:      3000,
		Status:         entity.QuestEntryPending,
	}})
	require.NoError(t, err)

	domain := NewHistoryDomain(bountyRepo, questRepo)
	resp, err := domain.GetHistory(ctx, &model.GetHistoryRequest{Address: me})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 2)

	// Newest first.
	require.Equal(t, model.TransactionTypeBountySubmitted, resp.Transactions[0].Type)
	require.Equal(t, int64(5), resp.Transactions[0].ItemID)
	require.Equal(t, "5", resp.Transactions[0].Amount)
	require.Equal(t, int64(2000), resp.Transactions[0].Timestamp)

	require.Equal(t, model.TransactionTypeBountyCreated, resp.Transactions[1].Type)
	require.Equal(t, int64(2), resp.Transactions[1].ItemID)
	require.Equal(t, "100", resp.Transactions[1].Amount)
	require.Equal(t, int64(1000), resp.Transactions[1].Timestamp)
	require.Contains(t, resp.Transactions[1].Description, "Logo design")
}

func Test_historyDomain_GetHistory_EmptyAddress(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewHistoryDomain(repository.NewBountyRepository(), repository.NewQuestRepository())

	resp, err := domain.GetHistory(ctx, &model.GetHistoryRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Transactions)
}

func Test_historyDomain_GetHistory_WinnerRecordedOnce(t *testing.T) {
	ctx := testutil.MockContext()
	bountyRepo := repository.NewBountyRepository()
	questRepo := repository.NewQuestRepository()

	me := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	// The same address appears twice in the winner list, history must still
	// record a single win.
	err := bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:            entity.Base{ID: "bounty-1"},
		OnChainID:       1,
		Creator:         "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		TotalAmount:     "400",
		JudgingDeadline: 5000,
		Status:          entity.BountyResolved,
		Winners:         entity.Array[string]{me, me},
	}, nil)
	require.NoError(t, err)

	domain := NewHistoryDomain(bountyRepo, questRepo)
	resp, err := domain.GetHistory(ctx, &model.GetHistoryRequest{Address: me})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	require.Equal(t, model.TransactionTypeBountyWon, resp.Transactions[0].Type)
	require.Equal(t, "400", resp.Transactions[0].Amount)
}
