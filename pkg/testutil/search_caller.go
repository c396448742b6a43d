package testutil

import (
	"context"

	"github.com/quinty-io/backend/internal/domain/search"
)

type MockSearchCaller struct {
	IndexBountyFunc  func(ctx context.Context, id int64, data search.BountyData) error
	IndexQuestFunc   func(ctx context.Context, id int64, data search.QuestData) error
	SearchBountyFunc func(ctx context.Context, query string, offset, limit int) ([]int64, error)
	SearchQuestFunc  func(ctx context.Context, query string, offset, limit int) ([]int64, error)
}

func (m *MockSearchCaller) IndexBounty(ctx context.Context, id int64, data search.BountyData) error {
	if m.IndexBountyFunc != nil {
		return m.IndexBountyFunc(ctx, id, data)
	}

	return nil
}

func (m *MockSearchCaller) IndexQuest(ctx context.Context, id int64, data search.QuestData) error {
	if m.IndexQuestFunc != nil {
		return m.IndexQuestFunc(ctx, id, data)
	}

	return nil
}

func (m *MockSearchCaller) SearchBounty(
	ctx context.Context, query string, offset, limit int,
) ([]int64, error) {
	if m.SearchBountyFunc != nil {
		return m.SearchBountyFunc(ctx, query, offset, limit)
	}

	return nil, nil
}

func (m *MockSearchCaller) SearchQuest(
	ctx context.Context, query string, offset, limit int,
) ([]int64, error) {
	if m.SearchQuestFunc != nil {
		return m.SearchQuestFunc(ctx, query, offset, limit)
	}

	return nil, nil
}

func (m *MockSearchCaller) Close() {}
