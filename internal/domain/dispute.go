package domain

import (
	"context"
	"time"

	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/ethutil"
)

type DisputeDomain interface {
	GetList(ctx context.Context, req *model.GetListDisputeRequest) (*model.GetListDisputeResponse, error)
	Get(ctx context.Context, req *model.GetDisputeRequest) (*model.GetDisputeResponse, error)
	PrepareVote(ctx context.Context, req *model.PrepareVoteRequest) (*model.PrepareVoteResponse, error)
}

type disputeDomain struct {
	aggregator  *indexer.Aggregator
	disputeRepo repository.DisputeRepository
}

func NewDisputeDomain(
	aggregator *indexer.Aggregator,
	disputeRepo repository.DisputeRepository,
) *disputeDomain {
	return &disputeDomain{aggregator: aggregator, disputeRepo: disputeRepo}
}

func (d *disputeDomain) GetList(
	ctx context.Context, req *model.GetListDisputeRequest,
) (*model.GetListDisputeResponse, error) {
	limit, err := checkLimit(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	disputes := d.aggregator.Snapshot().Disputes
	result := []model.Dispute{}
	for i := range disputes {
		if i < req.Offset {
			continue
		}

		result = append(result, model.ConvertDispute(&disputes[i]))
		if len(result) >= limit {
			break
		}
	}

	return &model.GetListDisputeResponse{Disputes: result}, nil
}

func (d *disputeDomain) Get(
	ctx context.Context, req *model.GetDisputeRequest,
) (*model.GetDisputeResponse, error) {
	disputes := d.aggregator.Snapshot().Disputes
	for i := range disputes {
		if disputes[i].OnChainID == req.ID {
			resp := model.GetDisputeResponse(model.ConvertDispute(&disputes[i]))
			return &resp, nil
		}
	}

	dispute, err := d.disputeRepo.GetByOnChainID(ctx, req.ID)
	if err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found dispute %d", req.ID)
	}

	resp := model.GetDisputeResponse(model.ConvertDispute(dispute))
	return &resp, nil
}

// PrepareVote validates a ranked vote before the voter sends the castVote
// transaction.
func (d *disputeDomain) PrepareVote(
	ctx context.Context, req *model.PrepareVoteRequest,
) (*model.PrepareVoteResponse, error) {
	if req.Voter == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields: voter")
	}

	if len(req.RankedSubIds) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields: ranked_sub_ids")
	}

	seen := map[int64]bool{}
	for _, id := range req.RankedSubIds {
		if seen[id] {
			return nil, errorx.New(errorx.BadRequest, "Duplicated submission %d in ranking", id)
		}
		seen[id] = true
	}

	resp, err := d.Get(ctx, &model.GetDisputeRequest{ID: req.DisputeID})
	if err != nil {
		return nil, err
	}

	if resp.Resolved {
		return nil, errorx.New(errorx.BadRequest, "Dispute %d is already resolved", req.DisputeID)
	}

	if resp.VotingEnd > 0 && time.Now().Unix() > resp.VotingEnd {
		return nil, errorx.New(errorx.BadRequest, "Voting of dispute %d has ended", req.DisputeID)
	}

	voter := ethutil.NormalizeAddress(req.Voter)
	for _, vote := range resp.Votes {
		if vote.Voter == voter {
			return nil, errorx.New(errorx.AlreadyExists, "Already voted on dispute %d", req.DisputeID)
		}
	}

	return &model.PrepareVoteResponse{}, nil
}
