package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/api/twitter"
	"github.com/quinty-io/backend/pkg/crypto"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/ethutil"
	"github.com/quinty-io/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const twitterService = "twitter"

type AuthDomain interface {
	WalletLogin(ctx context.Context, req *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	WalletVerify(ctx context.Context, req *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
	OAuth2Verify(ctx context.Context, req *model.OAuth2VerifyRequest) (*model.OAuth2VerifyResponse, error)
	Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo        repository.UserRepository
	oauth2Repo      repository.OAuth2Repository
	twitterEndpoint twitter.IEndpoint
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	oauth2Repo repository.OAuth2Repository,
	twitterEndpoint twitter.IEndpoint,
) *authDomain {
	return &authDomain{
		userRepo:        userRepo,
		oauth2Repo:      oauth2Repo,
		twitterEndpoint: twitterEndpoint,
	}
}

// WalletLogin hands out a one-time nonce for the wallet to sign. The nonce is
// kept in the cookie session, not returned state.
func (d *authDomain) WalletLogin(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if ethutil.NormalizeAddress(req.Address) == "" {
		return nil, errorx.New(errorx.BadRequest, "Invalid address %s", req.Address)
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random string: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{
		Address: ethutil.NormalizeAddress(req.Address),
		Nonce:   nonce,
	}, nil
}

func (d *authDomain) WalletVerify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	if req.SessionNonce == "" || req.SessionAddress == "" {
		return nil, errorx.New(errorx.Unauthenticated, "No pending wallet login")
	}

	err := verifyWalletAnswer(ctx, req.Signature, req.SessionNonce, req.SessionAddress)
	if err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByWalletAddress(ctx, req.SessionAddress)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by wallet address: %v", err)
			return nil, errorx.Unknown
		}

		user = &entity.User{
			Base:          entity.Base{ID: uuid.NewString()},
			WalletAddress: req.SessionAddress,
			Name:          req.SessionAddress,
			Role:          entity.UserRole,
			IsNewUser:     true,
		}

		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}
	}

	accessToken, err := d.generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.WalletVerifyResponse{
		AccessToken: accessToken,
		User:        model.ConvertUser(user, true),
	}, nil
}

// OAuth2Verify exchanges a twitter PKCE authorization code for our own access
// token, creating the linked user on first login.
func (d *authDomain) OAuth2Verify(
	ctx context.Context, req *model.OAuth2VerifyRequest,
) (*model.OAuth2VerifyResponse, error) {
	serviceToken, err := d.twitterEndpoint.ExchangeAuthorizationCode(
		ctx, req.Code, req.CodeVerifier, req.RedirectUri)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot exchange authorization code: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid authorization code")
	}

	serviceUser, err := d.twitterEndpoint.GetMe(ctx, serviceToken)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get twitter user: %v", err)
		return nil, errorx.Unknown
	}

	serviceUserID := fmt.Sprintf("%s_%s", twitterService, serviceUser.ID)
	var user *entity.User
	record, err := d.oauth2Repo.GetByServiceUserID(ctx, twitterService, serviceUserID)
	switch {
	case err == nil:
		user, err = d.userRepo.GetByID(ctx, record.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get linked user: %v", err)
			return nil, errorx.Unknown
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &entity.User{
			Base:      entity.Base{ID: uuid.NewString()},
			Name:      serviceUser.Username,
			Role:      entity.UserRole,
			IsNewUser: true,
		}

		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}

		err = d.oauth2Repo.Create(ctx, &entity.OAuth2{
			UserID:        user.ID,
			Service:       twitterService,
			ServiceUserID: serviceUserID,
			Username:      serviceUser.Username,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot link twitter user: %v", err)
			return nil, errorx.Unknown
		}

	default:
		xcontext.Logger(ctx).Errorf("Cannot get oauth2 record: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := d.generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.OAuth2VerifyResponse{
		AccessToken: accessToken,
		User:        model.ConvertUser(user, true),
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	session, err := xcontext.SessionStore(ctx).
		Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
	if err == nil {
		session.Options.MaxAge = -1
		if err := session.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot clear session: %v", err)
		}
	}

	return &model.LogoutResponse{}, nil
}

func (d *authDomain) generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		user.ID,
		model.AccessToken{
			ID:            user.ID,
			WalletAddress: user.WalletAddress,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", errorx.Unknown
	}

	return token, nil
}

func verifyWalletAnswer(ctx context.Context, hexSignature, sessionNonce, sessionAddress string) error {
	hash := accounts.TextHash([]byte(sessionNonce))
	signature, err := hexutil.Decode(hexSignature)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode signature: %v", err)
		return errorx.New(errorx.BadRequest, "Malformed signature")
	}

	if len(signature) != ethcrypto.SignatureLength {
		return errorx.New(errorx.BadRequest, "Malformed signature")
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	recovered, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot recover signature to address: %v", err)
		return errorx.New(errorx.BadRequest, "Malformed signature")
	}

	recoveredAddr := ethcrypto.PubkeyToAddress(*recovered)
	if !bytes.Equal(recoveredAddr.Bytes(), ethcommon.HexToAddress(sessionAddress).Bytes()) {
		return errorx.New(errorx.BadRequest, "Mismatched address")
	}

	return nil
}
