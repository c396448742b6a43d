package domain

import (
	"context"
	"strings"

	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/domain/search"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/api/pinata"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/xcontext"
)

type BountyDomain interface {
	GetList(ctx context.Context, req *model.GetListBountyRequest) (*model.GetListBountyResponse, error)
	Get(ctx context.Context, req *model.GetBountyRequest) (*model.GetBountyResponse, error)
	CreateDraft(ctx context.Context, req *model.CreateBountyDraftRequest) (*model.CreateBountyDraftResponse, error)
}

type bountyDomain struct {
	aggregator   *indexer.Aggregator
	bountyRepo   repository.BountyRepository
	searchCaller search.Caller
	ipfsEndpoint pinata.IEndpoint
}

func NewBountyDomain(
	aggregator *indexer.Aggregator,
	bountyRepo repository.BountyRepository,
	searchCaller search.Caller,
	ipfsEndpoint pinata.IEndpoint,
) *bountyDomain {
	return &bountyDomain{
		aggregator:   aggregator,
		bountyRepo:   bountyRepo,
		searchCaller: searchCaller,
		ipfsEndpoint: ipfsEndpoint,
	}
}

func checkLimit(ctx context.Context, offset, limit int) (int, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 || limit < 0 {
		return 0, errorx.New(errorx.BadRequest, "Offset or limit must not be negative")
	}

	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit > cfg.MaxLimit {
		return 0, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	return limit, nil
}

func (d *bountyDomain) GetList(
	ctx context.Context, req *model.GetListBountyRequest,
) (*model.GetListBountyResponse, error) {
	limit, err := checkLimit(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	if req.Q != "" {
		return d.searchList(ctx, req.Q, req.Status, req.Offset, limit)
	}

	bounties := d.aggregator.Snapshot().Bounties
	result := []model.Bounty{}
	skipped := 0
	for i := range bounties {
		if req.Status != "" && string(bounties[i].Status) != req.Status {
			continue
		}

		if skipped < req.Offset {
			skipped++
			continue
		}

		result = append(result, model.ConvertBounty(&bounties[i]))
		if len(result) >= limit {
			break
		}
	}

	return &model.GetListBountyResponse{Bounties: result}, nil
}

// maxSearchHits bounds how many ids one query pulls from the full-text index.
// Status and visibility filters run against the snapshot after matching, so
// paging also has to happen after them, never inside the index query.
const maxSearchHits = 1000

// searchList resolves the query through the full-text index first, then looks
// the matched ids up in the snapshot. Relevance order is kept.
func (d *bountyDomain) searchList(
	ctx context.Context, query, status string, offset, limit int,
) (*model.GetListBountyResponse, error) {
	ids, err := d.searchCaller.SearchBounty(ctx, query, 0, maxSearchHits)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search bounty: %v", err)
		return nil, errorx.Unknown
	}

	byID := make(map[int64]*entity.Bounty)
	bounties := d.aggregator.Snapshot().Bounties
	for i := range bounties {
		byID[bounties[i].OnChainID] = &bounties[i]
	}

	result := []model.Bounty{}
	skipped := 0
	for _, id := range ids {
		bounty, ok := byID[id]
		if !ok {
			continue
		}

		if status != "" && string(bounty.Status) != status {
			continue
		}

		if skipped < offset {
			skipped++
			continue
		}

		result = append(result, model.ConvertBounty(bounty))
		if len(result) >= limit {
			break
		}
	}

	return &model.GetListBountyResponse{Bounties: result}, nil
}

func (d *bountyDomain) Get(
	ctx context.Context, req *model.GetBountyRequest,
) (*model.GetBountyResponse, error) {
	bounties := d.aggregator.Snapshot().Bounties
	for i := range bounties {
		if bounties[i].OnChainID == req.ID {
			resp := model.GetBountyResponse(model.ConvertBounty(&bounties[i]))
			return &resp, nil
		}
	}

	// The snapshot may lag right after a restart, fall back to the database.
	bounty, err := d.bountyRepo.GetByOnChainID(ctx, req.ID)
	if err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found bounty %d", req.ID)
	}

	resp := model.GetBountyResponse(model.ConvertBounty(bounty))
	return &resp, nil
}

// CreateDraft pins the off-chain metadata of a bounty to ipfs before the
// creator sends the on-chain transaction. The returned cid goes into the
// createBounty call as the metadata reference.
func (d *bountyDomain) CreateDraft(
	ctx context.Context, req *model.CreateBountyDraftRequest,
) (*model.CreateBountyDraftResponse, error) {
	missing := []string{}
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Token == "" {
		missing = append(missing, "token")
	}
	if req.Deadline == 0 {
		missing = append(missing, "deadline")
	}

	if len(missing) > 0 {
		return nil, errorx.New(errorx.BadRequest,
			"Missing required fields: %s", strings.Join(missing, ", "))
	}

	cid, err := d.ipfsEndpoint.PinJSON(ctx, req.Title, pinata.Metadata{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Deliverables: req.Deliverables,
		Skills:       req.Skills,
		Images:       req.Images,
		Deadline:     req.Deadline,
		BountyType:   req.BountyType,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pin bounty metadata: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot pin metadata to ipfs")
	}

	return &model.CreateBountyDraftResponse{MetadataCid: cid}, nil
}
