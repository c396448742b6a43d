package domain

import (
	"context"
	"testing"

	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/pkg/api/pinata"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_blockchainDomain_GetMetadata(t *testing.T) {
	ctx := testutil.MockContext()

	fetched := ""
	ipfsEndpoint := &testutil.MockPinataEndpoint{
		FetchMetadataFunc: func(ctx context.Context, cid string) (pinata.Metadata, error) {
			fetched = cid
			return pinata.Metadata{Title: "Logo design"}, nil
		},
	}
	domain := NewBlockchainDomain(nil, nil, nil, ipfsEndpoint)

	resp, err := domain.GetMetadata(ctx, &model.GetMetadataRequest{Cid: testProofCid})
	require.NoError(t, err)
	require.Equal(t, "Logo design", resp.Title)
	require.Equal(t, testProofCid, fetched)
}

func Test_blockchainDomain_GetMetadata_InvalidCid(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewBlockchainDomain(nil, nil, nil, &testutil.MockPinataEndpoint{})

	_, err := domain.GetMetadata(ctx, &model.GetMetadataRequest{})
	require.ErrorContains(t, err, "Missing required fields: cid")

	_, err = domain.GetMetadata(ctx, &model.GetMetadataRequest{Cid: "not-a-cid"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_blockchainDomain_TrackTransaction_InvalidHash(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewBlockchainDomain(nil, nil, nil, nil)

	_, err := domain.TrackTransaction(ctx, &model.TrackTransactionRequest{TxHash: "0x1234"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}
