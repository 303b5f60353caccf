package search

import (
	"context"
	"sync"
	"testing"

	"github.com/johnleydelgado/legacy-app-sub005/internal/catalog"
	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/db/memory"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/request"
)

// --- Mocks ---

type mockRepo struct {
	fetchFn func(ctx context.Context, plan db.QueryPlan) ([]record.Record, error)
	countFn func(ctx context.Context, plan db.QueryPlan) (int64, error)

	mu    sync.Mutex
	plans []db.QueryPlan
}

func (m *mockRepo) Fetch(ctx context.Context, plan db.QueryPlan) ([]record.Record, error) {
	m.mu.Lock()
	m.plans = append(m.plans, plan)
	m.mu.Unlock()
	if m.fetchFn != nil {
		return m.fetchFn(ctx, plan)
	}
	return nil, nil
}

func (m *mockRepo) Count(ctx context.Context, plan db.QueryPlan) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, plan)
	}
	return 0, nil
}

func (m *mockRepo) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.plans)
}

type mockEnricher struct {
	name     string
	fields   map[string]any
	err      error
	defaults map[string]any
}

func (m *mockEnricher) Name() string             { return m.name }
func (m *mockEnricher) Defaults() map[string]any { return m.defaults }

func (m *mockEnricher) Enrich(_ context.Context, _ record.Record) (map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.fields, nil
}

// --- Helpers ---

// orderRows is the two-order data set used by the matching scenarios.
func orderRows() []record.Record {
	return []record.Record{
		{"id": int64(1), "order_number": "SO-100", "customer_name": "Acme Inc", "order_date": "2024-01-15"},
		{"id": int64(2), "order_number": "SO-200", "customer_name": "Bravo LLC", "order_date": "2024-02-01"},
	}
}

func newMemoryService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	store := memory.New(map[string][]record.Record{catalog.Orders: orderRows()})
	return New(store, catalog.Registry(), opts...)
}

func mustRequest(t *testing.T, q string, page, limit int, opts ...request.Option) request.Request {
	t.Helper()
	req, err := request.New(q, page, limit, opts...)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

func ids(rows []record.Record) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		id, _ := r["id"].(int64)
		out = append(out, id)
	}
	return out
}
