package statistic

import (
	"testing"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_leaderboard_SolverVolumeGoesToFirstWinner(t *testing.T) {
	ctx := testutil.MockContext()
	bountyRepo := repository.NewBountyRepository()

	winnerA := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	winnerB := "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	creator := "0xcccccccccccccccccccccccccccccccccccccccc"

	err := bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:        entity.Base{ID: "bounty-1"},
		OnChainID:   1,
		Creator:     creator,
		TotalAmount: "10",
		Status:      entity.BountyResolved,
		Winners:     entity.Array[string]{winnerA, winnerB},
	}, nil)
	require.NoError(t, err)

	leaderboard := NewLeaderboard(bountyRepo, testutil.NewInMemoryRedisClient())

	entries, err := leaderboard.GetLeaderBoard(ctx, OrderBySolvers, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, winnerA, entries[0].Address)
	require.Equal(t, "10", entries[0].TotalVolume)
}

func Test_leaderboard_CreatorVolume(t *testing.T) {
	ctx := testutil.MockContext()
	bountyRepo := repository.NewBountyRepository()

	creator := "0xcccccccccccccccccccccccccccccccccccccccc"
	other := "0xdddddddddddddddddddddddddddddddddddddddd"

	err := bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:        entity.Base{ID: "bounty-1"},
		OnChainID:   1,
		Creator:     creator,
		TotalAmount: "100",
		Status:      entity.BountyOpen,
	}, nil)
	require.NoError(t, err)

	err = bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:        entity.Base{ID: "bounty-2"},
		OnChainID:   2,
		Creator:     creator,
		TotalAmount: "50",
		Status:      entity.BountySlashed,
	}, nil)
	require.NoError(t, err)

	err = bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:        entity.Base{ID: "bounty-3"},
		OnChainID:   3,
		Creator:     other,
		TotalAmount: "30",
		Status:      entity.BountyOpen,
	}, nil)
	require.NoError(t, err)

	leaderboard := NewLeaderboard(bountyRepo, testutil.NewInMemoryRedisClient())

	entries, err := leaderboard.GetLeaderBoard(ctx, OrderByCreators, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Every bounty counts toward creator volume regardless of status.
	require.Equal(t, creator, entries[0].Address)
	require.Equal(t, "150", entries[0].TotalVolume)
	require.Equal(t, other, entries[1].Address)
	require.Equal(t, "30", entries[1].TotalVolume)
}

func Test_leaderboard_Invalidate(t *testing.T) {
	ctx := testutil.MockContext()
	bountyRepo := repository.NewBountyRepository()
	redisClient := testutil.NewInMemoryRedisClient()

	creator := "0xcccccccccccccccccccccccccccccccccccccccc"
	err := bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:        entity.Base{ID: "bounty-1"},
		OnChainID:   1,
		Creator:     creator,
		TotalAmount: "100",
		Status:      entity.BountyOpen,
	}, nil)
	require.NoError(t, err)

	leaderboard := NewLeaderboard(bountyRepo, redisClient)

	_, err = leaderboard.GetLeaderBoard(ctx, OrderByCreators, 0, 10)
	require.NoError(t, err)

	// A second bounty lands, the cached ranking is stale until invalidated.
	err = bountyRepo.Upsert(ctx, &entity.Bounty{
		Base:        entity.Base{ID: "bounty-2"},
		OnChainID:   2,
		Creator:     creator,
		TotalAmount: "100",
		Status:      entity.BountyOpen,
	}, nil)
	require.NoError(t, err)

	entries, err := leaderboard.GetLeaderBoard(ctx, OrderByCreators, 0, 10)
	require.NoError(t, err)
	require.Equal(t, "100", entries[0].TotalVolume)

	require.NoError(t, leaderboard.Invalidate(ctx))

	entries, err = leaderboard.GetLeaderBoard(ctx, OrderByCreators, 0, 10)
	require.NoError(t, err)
	require.Equal(t, "200", entries[0].TotalVolume)
}

func Test_leaderboard_InvalidOrderedBy(t *testing.T) {
	ctx := testutil.MockContext()
	leaderboard := NewLeaderboard(repository.NewBountyRepository(), testutil.NewInMemoryRedisClient())

	_, err := leaderboard.GetLeaderBoard(ctx, "volume", 0, 10)
	require.Error(t, err)
}
