package search

import (
	"context"
	"testing"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	fetchFn func(ctx context.Context, plan db.QueryPlan) ([]record.Record, error)
	countFn func(ctx context.Context, plan db.QueryPlan) (int64, error)
}

func (m *mockStore) Fetch(ctx context.Context, plan db.QueryPlan) ([]record.Record, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, plan)
	}
	return nil, nil
}

func (m *mockStore) Count(ctx context.Context, plan db.QueryPlan) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, plan)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
