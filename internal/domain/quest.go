package domain

import (
	"context"

	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/domain/search"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/ethutil"
	"github.com/quinty-io/backend/pkg/xcontext"
)

type QuestDomain interface {
	GetList(ctx context.Context, req *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
	Get(ctx context.Context, req *model.GetQuestRequest) (*model.GetQuestResponse, error)
	PrepareEntry(ctx context.Context, req *model.PrepareEntryRequest) (*model.PrepareEntryResponse, error)
}

type questDomain struct {
	aggregator   *indexer.Aggregator
	questRepo    repository.QuestRepository
	searchCaller search.Caller
}

func NewQuestDomain(
	aggregator *indexer.Aggregator,
	questRepo repository.QuestRepository,
	searchCaller search.Caller,
) *questDomain {
	return &questDomain{
		aggregator:   aggregator,
		questRepo:    questRepo,
		searchCaller: searchCaller,
	}
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	limit, err := checkLimit(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	snapshot := d.aggregator.Snapshot()

	var searchIDs map[int64]bool
	if req.Q != "" {
		ids, err := d.searchCaller.SearchQuest(ctx, req.Q, 0, maxSearchHits)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot search quest: %v", err)
			return nil, errorx.Unknown
		}

		searchIDs = make(map[int64]bool, len(ids))
		for _, id := range ids {
			searchIDs[id] = true
		}
	}

	quests := []model.Quest{}
	entryCounts := map[int64]int64{}
	skipped := 0
	for i := range snapshot.Quests {
		quest := &snapshot.Quests[i]
		if !req.IncludeClosed && (quest.Resolved || quest.Cancelled) {
			continue
		}

		if searchIDs != nil && !searchIDs[quest.OnChainID] {
			continue
		}

		if skipped < req.Offset {
			skipped++
			continue
		}

		quests = append(quests, model.ConvertQuest(quest))
		entryCounts[quest.OnChainID] = snapshot.EntryCounts[quest.OnChainID]
		if len(quests) >= limit {
			break
		}
	}

	return &model.GetListQuestResponse{Quests: quests, EntryCounts: entryCounts}, nil
}

func (d *questDomain) Get(
	ctx context.Context, req *model.GetQuestRequest,
) (*model.GetQuestResponse, error) {
	quests := d.aggregator.Snapshot().Quests
	for i := range quests {
		if quests[i].OnChainID == req.ID {
			resp := model.GetQuestResponse(model.ConvertQuest(&quests[i]))
			return &resp, nil
		}
	}

	quest, err := d.questRepo.GetByOnChainID(ctx, req.ID)
	if err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found quest %d", req.ID)
	}

	resp := model.GetQuestResponse(model.ConvertQuest(quest))
	return &resp, nil
}

// PrepareEntry validates an entry before the solver spends gas on the
// submitEntry transaction. The contract enforces all of this again, the check
// here only exists for a friendlier failure.
func (d *questDomain) PrepareEntry(
	ctx context.Context, req *model.PrepareEntryRequest,
) (*model.PrepareEntryResponse, error) {
	if req.Solver == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields: solver")
	}

	if req.IpfsProofCid == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields: ipfs_proof_cid")
	}

	if !ethutil.IsValidCid(req.IpfsProofCid) {
		return nil, errorx.New(errorx.BadRequest, "Invalid cid %s", req.IpfsProofCid)
	}

	resp, err := d.Get(ctx, &model.GetQuestRequest{ID: req.QuestID})
	if err != nil {
		return nil, err
	}

	if resp.Resolved || resp.Cancelled {
		return nil, errorx.New(errorx.BadRequest, "Quest %d is closed", req.QuestID)
	}

	if resp.QualifiersCount >= resp.MaxQualifiers {
		return nil, errorx.New(errorx.BadRequest, "Quest %d has no qualifier slot left", req.QuestID)
	}

	solver := ethutil.NormalizeAddress(req.Solver)
	for _, entry := range resp.Entries {
		if entry.Solver == solver && entry.Status != string(entity.QuestEntryRejected) {
			return nil, errorx.New(errorx.AlreadyExists, "Already entered quest %d", req.QuestID)
		}
	}

	return &model.PrepareEntryResponse{}, nil
}
