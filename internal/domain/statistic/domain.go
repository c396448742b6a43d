package statistic

import (
	"context"

	"github.com/pkg/math"
	"github.com/quinty-io/backend/internal/client"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/pkg/xcontext"
)

const defaultLeaderBoardSize = 3

type Domain interface {
	GetLeaderBoard(ctx context.Context, req *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type domain struct {
	leaderboard Leaderboard
	resolver    *client.UsernameResolver
}

func NewDomain(leaderboard Leaderboard, resolver *client.UsernameResolver) *domain {
	return &domain{leaderboard: leaderboard, resolver: resolver}
}

// GetLeaderBoard returns the ranking decorated with display names. The
// default page is the top three shown on the landing page.
func (d *domain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLeaderBoardSize
	}
	limit = math.MinInt(limit, xcontext.Configs(ctx).ApiServer.MaxLimit)

	offset := math.MaxInt(req.Offset, 0)

	orderedBy := req.Type
	if orderedBy == "" {
		orderedBy = OrderByCreators
	}

	entries, err := d.leaderboard.GetLeaderBoard(ctx, orderedBy, offset, limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		name, err := d.resolver.Resolve(ctx, entries[i].Address)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot resolve name of %s: %v", entries[i].Address, err)
			continue
		}

		entries[i].Name = name
	}

	return &model.GetLeaderBoardResponse{Data: entries}, nil
}
