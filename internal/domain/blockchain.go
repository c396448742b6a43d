package domain

import (
	"context"
	"errors"
	"regexp"

	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/api/pinata"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/ethutil"
	"github.com/quinty-io/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var txHashPattern = regexp.MustCompile("^0x[0-9a-fA-F]{64}$")

type BlockchainDomain interface {
	TrackTransaction(ctx context.Context, req *model.TrackTransactionRequest) (*model.TrackTransactionResponse, error)
	GetTransaction(ctx context.Context, req *model.GetTransactionRequest) (*model.GetTransactionResponse, error)
	GetMetadata(ctx context.Context, req *model.GetMetadataRequest) (*model.GetMetadataResponse, error)
}

type blockchainDomain struct {
	receiptTracker *indexer.ReceiptTracker
	txRepo         repository.BlockChainTransactionRepository
	userRepo       repository.UserRepository
	ipfsEndpoint   pinata.IEndpoint
}

func NewBlockchainDomain(
	receiptTracker *indexer.ReceiptTracker,
	txRepo repository.BlockChainTransactionRepository,
	userRepo repository.UserRepository,
	ipfsEndpoint pinata.IEndpoint,
) *blockchainDomain {
	return &blockchainDomain{
		receiptTracker: receiptTracker,
		txRepo:         txRepo,
		userRepo:       userRepo,
		ipfsEndpoint:   ipfsEndpoint,
	}
}

// TrackTransaction registers a freshly sent transaction hash so the watcher
// process reports its receipt back over the websocket.
func (d *blockchainDomain) TrackTransaction(
	ctx context.Context, req *model.TrackTransactionRequest,
) (*model.TrackTransactionResponse, error) {
	if !txHashPattern.MatchString(req.TxHash) {
		return nil, errorx.New(errorx.BadRequest, "Invalid transaction hash %s", req.TxHash)
	}

	sender := ""
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		user, err := d.userRepo.GetByID(ctx, userID)
		if err == nil {
			sender = user.WalletAddress
		}
	}

	if err := d.receiptTracker.Track(ctx, req.TxHash, sender, req.Action); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot track transaction %s: %v", req.TxHash, err)
		return nil, errorx.Unknown
	}

	return &model.TrackTransactionResponse{}, nil
}

func (d *blockchainDomain) GetTransaction(
	ctx context.Context, req *model.GetTransactionRequest,
) (*model.GetTransactionResponse, error) {
	chainName := xcontext.Configs(ctx).Blockchain.Chain
	tx, err := d.txRepo.GetByTxHash(ctx, req.TxHash, chainName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found transaction %s", req.TxHash)
		}

		xcontext.Logger(ctx).Errorf("Cannot get transaction %s: %v", req.TxHash, err)
		return nil, errorx.Unknown
	}

	return &model.GetTransactionResponse{
		TxHash: tx.TxHash,
		Status: string(tx.Status),
		Action: tx.Action,
	}, nil
}

func (d *blockchainDomain) GetMetadata(
	ctx context.Context, req *model.GetMetadataRequest,
) (*model.GetMetadataResponse, error) {
	if req.Cid == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields: cid")
	}

	if !ethutil.IsValidCid(req.Cid) {
		return nil, errorx.New(errorx.BadRequest, "Invalid cid %s", req.Cid)
	}

	metadata, err := d.ipfsEndpoint.FetchMetadata(ctx, req.Cid)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot fetch metadata %s: %v", req.Cid, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot fetch metadata from ipfs")
	}

	return &model.GetMetadataResponse{
		Title:        metadata.Title,
		Description:  metadata.Description,
		Requirements: metadata.Requirements,
		Deliverables: metadata.Deliverables,
		Skills:       metadata.Skills,
		Images:       metadata.Images,
		Deadline:     metadata.Deadline,
		BountyType:   metadata.BountyType,
	}, nil
}
