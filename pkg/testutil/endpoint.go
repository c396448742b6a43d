package testutil

import (
	"context"
	"errors"
	"io"

	"github.com/quinty-io/backend/pkg/api/pinata"
)

type MockPinataEndpoint struct {
	PinFileFunc       func(ctx context.Context, name string, f io.Reader) (string, error)
	PinJSONFunc       func(ctx context.Context, name string, obj any) (string, error)
	FetchMetadataFunc func(ctx context.Context, cid string) (pinata.Metadata, error)
}

func (m *MockPinataEndpoint) PinFile(ctx context.Context, name string, f io.Reader) (string, error) {
	if m.PinFileFunc != nil {
		return m.PinFileFunc(ctx, name, f)
	}

	return "", errors.New("not implemented")
}

func (m *MockPinataEndpoint) PinJSON(ctx context.Context, name string, obj any) (string, error) {
	if m.PinJSONFunc != nil {
		return m.PinJSONFunc(ctx, name, obj)
	}

	return "", errors.New("not implemented")
}

func (m *MockPinataEndpoint) FetchMetadata(ctx context.Context, cid string) (pinata.Metadata, error) {
	if m.FetchMetadataFunc != nil {
		return m.FetchMetadataFunc(ctx, cid)
	}

	return pinata.Metadata{}, errors.New("not implemented")
}
