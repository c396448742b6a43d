package domain

import (
	"context"
	"math/big"
	"testing"

	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newBountyAggregator(ctx context.Context, t *testing.T, count int64) *indexer.Aggregator {
	quinty := &testutil.MockQuintyGateway{
		BountyCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(count), nil
		},
		GetBountyFunc: func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
			return testutil.SampleBountyRecord(id.Int64(), "0x1111111111111111111111111111111111111111"), nil
		},
	}

	quest := &testutil.MockQuestGateway{}
	dispute := &testutil.MockDisputeGateway{}
	aggregator := indexer.NewAggregator(
		indexer.NewEntityFetcher(quinty, quest, dispute, nil),
		quinty, quest, dispute,
		repository.NewBountyRepository(),
		repository.NewQuestRepository(),
		repository.NewDisputeRepository(),
		nil,
	)
	require.NoError(t, aggregator.ReloadAll(ctx))

	return aggregator
}

func Test_bountyDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	aggregator := newBountyAggregator(ctx, t, 20)
	domain := NewBountyDomain(aggregator, repository.NewBountyRepository(), nil, nil)

	// Default limit applies when none is given.
	resp, err := domain.GetList(ctx, &model.GetListBountyRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bounties, 10)
	require.Equal(t, int64(20), resp.Bounties[0].ID)
	require.Equal(t, int64(11), resp.Bounties[9].ID)

	resp, err = domain.GetList(ctx, &model.GetListBountyRequest{Offset: 18, Limit: 5})
	require.NoError(t, err)
	require.Len(t, resp.Bounties, 2)
	require.Equal(t, int64(2), resp.Bounties[0].ID)
	require.Equal(t, int64(1), resp.Bounties[1].ID)
}

func Test_bountyDomain_GetList_InvalidLimit(t *testing.T) {
	ctx := testutil.MockContext()
	aggregator := newBountyAggregator(ctx, t, 1)
	domain := NewBountyDomain(aggregator, repository.NewBountyRepository(), nil, nil)

	_, err := domain.GetList(ctx, &model.GetListBountyRequest{Limit: -1})
	require.Error(t, err)

	_, err = domain.GetList(ctx, &model.GetListBountyRequest{Limit: 51})
	require.ErrorContains(t, err, "Exceeded the maximum limit of 50")
}

func Test_bountyDomain_GetList_SearchWithStatusFilter(t *testing.T) {
	ctx := testutil.MockContext()

	// Even ids resolved, odd ids open.
	quinty := &testutil.MockQuintyGateway{
		BountyCounterFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(6), nil
		},
		GetBountyFunc: func(ctx context.Context, id *big.Int) (*chain.BountyRecord, error) {
			record := testutil.SampleBountyRecord(id.Int64(), "0x1111111111111111111111111111111111111111")
			if id.Int64()%2 == 0 {
				record.Status = 2
			}
			return record, nil
		},
	}

	quest := &testutil.MockQuestGateway{}
	dispute := &testutil.MockDisputeGateway{}
	aggregator := indexer.NewAggregator(
		indexer.NewEntityFetcher(quinty, quest, dispute, nil),
		quinty, quest, dispute,
		repository.NewBountyRepository(),
		repository.NewQuestRepository(),
		repository.NewDisputeRepository(),
		nil,
	)
	require.NoError(t, aggregator.ReloadAll(ctx))

	matched := []int64{6, 5, 4, 3, 2, 1}
	searchCaller := &testutil.MockSearchCaller{
		SearchBountyFunc: func(ctx context.Context, query string, offset, limit int) ([]int64, error) {
			if offset >= len(matched) {
				return nil, nil
			}
			end := offset + limit
			if end > len(matched) {
				end = len(matched)
			}
			return matched[offset:end], nil
		},
	}
	domain := NewBountyDomain(aggregator, repository.NewBountyRepository(), searchCaller, nil)

	// A status-filtered page must still fill up to the limit when more
	// matches exist beyond the first index page.
	resp, err := domain.GetList(ctx, &model.GetListBountyRequest{Q: "logo", Status: "open", Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Bounties, 2)
	require.Equal(t, int64(5), resp.Bounties[0].ID)
	require.Equal(t, int64(3), resp.Bounties[1].ID)

	resp, err = domain.GetList(ctx, &model.GetListBountyRequest{Q: "logo", Status: "open", Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Bounties, 1)
	require.Equal(t, int64(1), resp.Bounties[0].ID)
}

func Test_bountyDomain_Get_NotFound(t *testing.T) {
	ctx := testutil.MockContext()
	aggregator := newBountyAggregator(ctx, t, 2)
	domain := NewBountyDomain(aggregator, repository.NewBountyRepository(), nil, nil)

	resp, err := domain.Get(ctx, &model.GetBountyRequest{ID: 2})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.ID)

	_, err = domain.Get(ctx, &model.GetBountyRequest{ID: 99})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_bountyDomain_CreateDraft(t *testing.T) {
	ctx := testutil.MockContext()
	ipfsEndpoint := &testutil.MockPinataEndpoint{
		PinJSONFunc: func(ctx context.Context, name string, obj any) (string, error) {
			return "QmTestCid", nil
		},
	}
	domain := NewBountyDomain(nil, nil, nil, ipfsEndpoint)

	resp, err := domain.CreateDraft(ctx, &model.CreateBountyDraftRequest{
		Title:       "Logo design",
		Description: "Design a new logo",
		Token:       "0x0000000000000000000000000000000000000001",
		Deadline:    1900000000,
	})
	require.NoError(t, err)
	require.Equal(t, "QmTestCid", resp.MetadataCid)
}

func Test_bountyDomain_CreateDraft_MissingFields(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewBountyDomain(nil, nil, nil, &testutil.MockPinataEndpoint{})

	_, err := domain.CreateDraft(ctx, &model.CreateBountyDraftRequest{Title: "Logo design"})
	require.ErrorContains(t, err, "Missing required fields: description, token, deadline")
}
