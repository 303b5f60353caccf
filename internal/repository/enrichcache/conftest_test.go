package enrichcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

type mockEnricher struct {
	fields map[string]any
	err    error
	calls  int
}

func (m *mockEnricher) Name() string { return "contacts" }

func (m *mockEnricher) Defaults() map[string]any { return map[string]any{"contacts": []any{}} }

func (m *mockEnricher) CacheKey(rec record.Record) (string, bool) {
	id, ok := rec["id"].(string)
	return "contacts:" + id, ok
}

func (m *mockEnricher) Enrich(_ context.Context, _ record.Record) (map[string]any, error) {
	m.calls++
	return m.fields, m.err
}

// mockKVStore is an in-memory store with optional failure hooks.
type mockKVStore struct {
	data   map[string][]byte
	getErr error
	setErr error
	ttls   map[string]time.Duration
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockKVStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCached(t *testing.T, inner *mockEnricher) (*Cached, *mockKVStore) {
	t.Helper()
	ms := newMockKVStore()
	return New(inner, ms, time.Minute, nil, zap.NewNop()), ms
}
