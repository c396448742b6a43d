package domain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/client"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/ethutil"
	"github.com/quinty-io/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetProfile(ctx context.Context, req *model.GetUserProfileRequest) (*model.GetUserProfileResponse, error)
	GetUsername(ctx context.Context, req *model.GetUsernameRequest) (*model.GetUsernameResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	achievementRepo repository.AchievementRepository
	reputation      chain.ReputationGateway
	resolver        *client.UsernameResolver
}

func NewUserDomain(
	userRepo repository.UserRepository,
	achievementRepo repository.AchievementRepository,
	reputation chain.ReputationGateway,
	resolver *client.UsernameResolver,
) *userDomain {
	return &userDomain{
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
		reputation:      reputation,
		resolver:        resolver,
	}
}

// GetProfile recomputes the reputation of one wallet from chain storage on
// every call. Nothing is persisted, the badge contract is the single source
// of truth for stats.
func (d *userDomain) GetProfile(
	ctx context.Context, req *model.GetUserProfileRequest,
) (*model.GetUserProfileResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields: address")
	}

	if !common.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address %s", req.Address)
	}

	address := common.HexToAddress(req.Address)
	stats, err := d.reputation.StatsOf(ctx, address)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read stats of %s: %v", req.Address, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot read reputation stats")
	}

	tokenIds, err := d.reputation.AchievementsOf(ctx, address)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read achievements of %s: %v", req.Address, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot read achievements")
	}

	// Unlock names and timestamps live in our database, written by the
	// watcher when AchievementUnlocked events arrive.
	unlocked, err := d.achievementRepo.GetByUserAddress(ctx, ethutil.NormalizeAddress(req.Address))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load achievements of %s: %v", req.Address, err)
		return nil, errorx.Unknown
	}

	unlockedByToken := make(map[int64]entity.Achievement, len(unlocked))
	for _, a := range unlocked {
		unlockedByToken[a.TokenID] = a
	}

	achievements := []model.Achievement{}
	ids := make([]int64, 0, len(tokenIds))
	for _, tokenID := range tokenIds {
		id := tokenID.Int64()
		ids = append(ids, id)

		achievement := model.Achievement{TokenID: id}
		if a, ok := unlockedByToken[id]; ok {
			achievement.Name = a.Name
			achievement.UnlockedAt = a.UnlockedAt
		}

		achievements = append(achievements, achievement)
	}

	return &model.GetUserProfileResponse{
		Address: ethutil.NormalizeAddress(req.Address),
		Stats: model.UserStats{
			BountiesCreated: stats.BountiesCreated.Int64(),
			Submissions:     stats.Submissions.Int64(),
			Wins:            stats.Wins.Int64(),
		},
		Achievements: achievements,
		TokenIds:     ids,
	}, nil
}

func (d *userDomain) GetUsername(
	ctx context.Context, req *model.GetUsernameRequest,
) (*model.GetUsernameResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields: address")
	}

	name, err := d.resolver.Resolve(ctx, req.Address)
	if err != nil {
		return nil, errorx.Unknown
	}

	return &model.GetUsernameResponse{Username: name}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get current user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields: name")
	}

	if _, err := d.userRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "The name %s is already taken", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check name availability: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	err := d.userRepo.UpdateByID(ctx, userID, &entity.User{Name: req.Name, IsNewUser: false})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	// Cached display names are stale after a rename.
	d.resolver.Reset()

	return &model.UpdateProfileResponse{}, nil
}
