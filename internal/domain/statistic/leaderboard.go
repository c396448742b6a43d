package statistic

import (
	"context"
	"math/big"
	"strconv"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/xcontext"
	"github.com/quinty-io/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const (
	OrderByCreators = "creators"
	OrderBySolvers  = "solvers"
)

type Leaderboard interface {
	GetLeaderBoard(ctx context.Context, orderedBy string, offset, limit int) ([]model.LeaderBoardEntry, error)
	Invalidate(ctx context.Context) error
}

type leaderboard struct {
	bountyRepo  repository.BountyRepository
	redisClient xredis.Client
}

func NewLeaderboard(
	bountyRepo repository.BountyRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{bountyRepo: bountyRepo, redisClient: redisClient}
}

func redisKeyLeaderBoard(orderedBy string) (string, error) {
	switch orderedBy {
	case OrderByCreators:
		return "leaderboard:creators", nil
	case OrderBySolvers:
		return "leaderboard:solvers", nil
	default:
		return "", errorx.New(errorx.BadRequest, "Invalid ordered by field")
	}
}

func (l *leaderboard) GetLeaderBoard(
	ctx context.Context, orderedBy string, offset, limit int,
) ([]model.LeaderBoardEntry, error) {
	key, err := redisKeyLeaderBoard(orderedBy)
	if err != nil {
		return nil, err
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadLeaderboardFromDB(ctx); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderBoardEntry{}
	for _, z := range results {
		entries = append(entries, model.LeaderBoardEntry{
			Address:     z.Member.(string),
			TotalVolume: strconv.FormatFloat(z.Score, 'f', -1, 64),
		})
	}

	return entries, nil
}

// Invalidate drops the cached rankings so the next read recomputes from the
// freshly reloaded read-model.
func (l *leaderboard) Invalidate(ctx context.Context) error {
	for _, orderedBy := range []string{OrderByCreators, OrderBySolvers} {
		key, _ := redisKeyLeaderBoard(orderedBy)
		if err := l.redisClient.Del(ctx, key); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot del leaderboard key %s: %v", key, err)
			return errorx.Unknown
		}
	}

	return nil
}

// loadLeaderboardFromDB sums bounty volume per address. Creator volume
// counts every bounty. Solver volume counts resolved bounties only, and the
// full amount goes to the first winner address, never split across winners.
func (l *leaderboard) loadLeaderboardFromDB(ctx context.Context) error {
	bounties, err := l.bountyRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load bounties from database: %v", err)
		return errorx.Unknown
	}

	creatorVolume := map[string]*big.Int{}
	solverVolume := map[string]*big.Int{}
	for _, bounty := range bounties {
		amount, ok := new(big.Int).SetString(bounty.TotalAmount, 10)
		if !ok {
			xcontext.Logger(ctx).Warnf("Invalid amount %s of bounty %d",
				bounty.TotalAmount, bounty.OnChainID)
			continue
		}

		if _, ok := creatorVolume[bounty.Creator]; !ok {
			creatorVolume[bounty.Creator] = new(big.Int)
		}
		creatorVolume[bounty.Creator].Add(creatorVolume[bounty.Creator], amount)

		if bounty.Status == entity.BountyResolved && len(bounty.Winners) > 0 {
			first := bounty.Winners[0]
			if _, ok := solverVolume[first]; !ok {
				solverVolume[first] = new(big.Int)
			}
			solverVolume[first].Add(solverVolume[first], amount)
		}
	}

	// ZSET scores are float64, so volumes above 2^53 wei lose precision and
	// near-tied addresses can swap rank.
	creatorKey, _ := redisKeyLeaderBoard(OrderByCreators)
	for address, volume := range creatorVolume {
		score, _ := new(big.Float).SetInt(volume).Float64()
		if err := l.redisClient.ZAdd(ctx, creatorKey, redis.Z{Member: address, Score: score}); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	solverKey, _ := redisKeyLeaderBoard(OrderBySolvers)
	for address, volume := range solverVolume {
		score, _ := new(big.Float).SetInt(volume).Float64()
		if err := l.redisClient.ZAdd(ctx, solverKey, redis.Z{Member: address, Score: score}); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
