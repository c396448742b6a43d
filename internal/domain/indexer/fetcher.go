package indexer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/pkg/api/pinata"
	"github.com/quinty-io/backend/pkg/ethutil"
	"github.com/quinty-io/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// EntityFetcher loads one entity's full record plus its nested collection
// from chain. Every fetch method soft-fails: the error is logged and a nil
// record returned, so one broken entity never aborts a scan of the others.
type EntityFetcher struct {
	quinty  chain.QuintyGateway
	quest   chain.QuestGateway
	dispute chain.DisputeGateway
	ipfs    pinata.IEndpoint
}

func NewEntityFetcher(
	quinty chain.QuintyGateway,
	quest chain.QuestGateway,
	dispute chain.DisputeGateway,
	ipfs pinata.IEndpoint,
) *EntityFetcher {
	return &EntityFetcher{
		quinty:  quinty,
		quest:   quest,
		dispute: dispute,
		ipfs:    ipfs,
	}
}

// FetchBounty returns the bounty and its submissions, or nil when any read
// fails. Returning a bounty with a partially loaded submission list would
// break the submission-count invariant, so nested failures drop the bounty.
func (f *EntityFetcher) FetchBounty(ctx context.Context, id int64) (*entity.Bounty, []entity.BountySubmission) {
	record, err := f.quinty.GetBounty(ctx, big.NewInt(id))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot fetch bounty %d: %v", id, err)
		return nil, nil
	}

	status, err := entity.BountyStatusFromChain(record.Status)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Bounty %d has invalid status: %v", id, err)
		return nil, nil
	}

	count := record.SubmissionCount.Int64()
	submissions := make([]entity.BountySubmission, count)
	g, groupCtx := errgroup.WithContext(ctx)
	for i := int64(0); i < count; i++ {
		index := i
		g.Go(func() error {
			sub, err := f.quinty.GetSubmission(groupCtx, big.NewInt(id), big.NewInt(index))
			if err != nil {
				return fmt.Errorf("cannot fetch submission %d of bounty %d: %w", index, id, err)
			}

			submissions[index] = entity.BountySubmission{
				Base:            entity.Base{ID: fmt.Sprintf("bounty-%d-sub-%d", id, index)},
				BountyOnChainID: id,
				SubmissionIndex: index,
				Submitter:       ethutil.NormalizeAddress(sub.Submitter.Hex()),
				IpfsCid:         sub.IpfsCid,
				Deposit:         sub.Deposit.String(),
				Timestamp:       sub.Timestamp.Int64(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		xcontext.Logger(ctx).Warnf("Dropping bounty %d: %v", id, err)
		return nil, nil
	}

	prizes := make([]string, 0, len(record.Prizes))
	for _, prize := range record.Prizes {
		prizes = append(prizes, prize.String())
	}

	winners := make([]string, 0, len(record.Winners))
	for _, winner := range record.Winners {
		winners = append(winners, ethutil.NormalizeAddress(winner.Hex()))
	}

	bounty := &entity.Bounty{
		Base:            entity.Base{ID: fmt.Sprintf("bounty-%d", id)},
		OnChainID:       id,
		Creator:         ethutil.NormalizeAddress(record.Creator.Hex()),
		MetadataCid:     record.MetadataCid,
		Token:           ethutil.NormalizeAddress(record.Token.Hex()),
		TotalAmount:     record.TotalAmount.String(),
		Prizes:          prizes,
		OpenDeadline:    record.OpenDeadline.Int64(),
		JudgingDeadline: record.JudgingDeadline.Int64(),
		SlashPercent:    record.SlashPercent.Int64(),
		Status:          status,
		SubmissionCount: count,
		TotalDeposits:   record.TotalDeposits.String(),
		Winners:         winners,
	}

	f.fillBountyMetadata(ctx, bounty)

	return bounty, submissions
}

// fillBountyMetadata resolves the IPFS metadata document behind the bounty.
// Metadata is decoration, a gateway hiccup must not drop the bounty itself.
func (f *EntityFetcher) fillBountyMetadata(ctx context.Context, bounty *entity.Bounty) {
	if f.ipfs == nil || bounty.MetadataCid == "" {
		return
	}

	metadata, err := f.ipfs.FetchMetadata(ctx, bounty.MetadataCid)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot fetch metadata %s of bounty %d: %v",
			bounty.MetadataCid, bounty.OnChainID, err)
		return
	}

	bounty.Title = metadata.Title
	bounty.Description = []byte(metadata.Description)
}

func (f *EntityFetcher) FetchQuest(ctx context.Context, id int64) (*entity.Quest, []entity.QuestEntry) {
	record, err := f.quest.GetQuest(ctx, big.NewInt(id))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot fetch quest %d: %v", id, err)
		return nil, nil
	}

	if record.Resolved && record.Cancelled {
		xcontext.Logger(ctx).Errorf("Quest %d is both resolved and cancelled", id)
		return nil, nil
	}

	count := record.QualifiersCount.Int64()
	entries := make([]entity.QuestEntry, count)
	g, groupCtx := errgroup.WithContext(ctx)
	for i := int64(0); i < count; i++ {
		index := i
		g.Go(func() error {
			raw, err := f.quest.GetEntry(groupCtx, big.NewInt(id), big.NewInt(index))
			if err != nil {
				return fmt.Errorf("cannot fetch entry %d of quest %d: %w", index, id, err)
			}

			status, err := entity.QuestEntryStatusFromChain(raw.Status)
			if err != nil {
				return fmt.Errorf("entry %d of quest %d: %w", index, id, err)
			}

			entries[index] = entity.QuestEntry{
				Base:           entity.Base{ID: fmt.Sprintf("quest-%d-entry-%d", id, index)},
				QuestOnChainID: id,
				EntryIndex:     index,
				Solver:         ethutil.NormalizeAddress(raw.Solver.Hex()),
				IpfsProofCid:   raw.IpfsProofCid,
				Timestamp:      raw.Timestamp.Int64(),
				Status:         status,
				Feedback:       raw.Feedback,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		xcontext.Logger(ctx).Warnf("Dropping quest %d: %v", id, err)
		return nil, nil
	}

	quest := &entity.Quest{
		Base:            entity.Base{ID: fmt.Sprintf("quest-%d", id)},
		OnChainID:       id,
		Creator:         ethutil.NormalizeAddress(record.Creator.Hex()),
		Title:           record.Title,
		Description:     []byte(record.Description),
		TotalAmount:     record.TotalAmount.String(),
		PerQualifier:    record.PerQualifier.String(),
		MaxQualifiers:   record.MaxQualifiers.Int64(),
		QualifiersCount: count,
		Deadline:        record.Deadline.Int64(),
		ChainCreatedAt:  record.CreatedAt.Int64(),
		Resolved:        record.Resolved,
		Cancelled:       record.Cancelled,
		Requirements:    record.Requirements,
		ImageUrl:        record.ImageUrl,
	}

	return quest, entries
}

func (f *EntityFetcher) FetchDispute(ctx context.Context, id int64) (*entity.Dispute, []entity.DisputeVote) {
	record, err := f.dispute.GetDispute(ctx, big.NewInt(id))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot fetch dispute %d: %v", id, err)
		return nil, nil
	}

	count := record.VoteCount.Int64()
	votes := make([]entity.DisputeVote, count)
	g, groupCtx := errgroup.WithContext(ctx)
	for i := int64(0); i < count; i++ {
		index := i
		g.Go(func() error {
			raw, err := f.dispute.GetVote(groupCtx, big.NewInt(id), big.NewInt(index))
			if err != nil {
				return fmt.Errorf("cannot fetch vote %d of dispute %d: %w", index, id, err)
			}

			rankedSubIds := make([]int64, 0, len(raw.RankedSubIds))
			for _, subID := range raw.RankedSubIds {
				rankedSubIds = append(rankedSubIds, subID.Int64())
			}

			votes[index] = entity.DisputeVote{
				Base:             entity.Base{ID: fmt.Sprintf("dispute-%d-vote-%d", id, index)},
				DisputeOnChainID: id,
				VoteIndex:        index,
				Voter:            ethutil.NormalizeAddress(raw.Voter.Hex()),
				Stake:            raw.Stake.String(),
				RankedSubIds:     rankedSubIds,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		xcontext.Logger(ctx).Warnf("Dropping dispute %d: %v", id, err)
		return nil, nil
	}

	dispute := &entity.Dispute{
		Base:            entity.Base{ID: fmt.Sprintf("dispute-%d", id)},
		OnChainID:       id,
		BountyOnChainID: record.BountyID.Int64(),
		IsExpiry:        record.IsExpiry,
		Amount:          record.Amount.String(),
		VotingEnd:       record.VotingEnd.Int64(),
		VoteCount:       count,
		Resolved:        record.Resolved,
	}

	return dispute, votes
}
