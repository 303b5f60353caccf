package sdk

import (
	"context"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/catalog"
	"github.com/johnleydelgado/legacy-app-sub005/internal/db/memory"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	chiTransport "github.com/johnleydelgado/legacy-app-sub005/internal/transport/chi"
	healthuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/health"
	searchuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/search"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func testOrders() []record.Record {
	return []record.Record{
		{"id": int64(1), "order_number": "SO-100", "customer_name": "Acme Inc", "status": "open", "order_date": "2024-01-15"},
		{"id": int64(2), "order_number": "SO-200", "customer_name": "Bravo LLC", "status": "closed", "order_date": "2024-02-01"},
		{"id": int64(3), "order_number": "SO-300", "customer_name": "Acme West", "status": "open", "order_date": "2024-03-10"},
	}
}

// newTestServer runs the real router over an in-memory record source.
func newTestServer(t *testing.T, dbErr error, apiKeys ...string) *httptest.Server {
	t.Helper()
	store := memory.New(map[string][]record.Record{catalog.Orders: testOrders()})
	search := searchuc.New(store, catalog.Registry())
	health := healthuc.New(&mockPinger{err: dbErr}, nil)
	h := chiTransport.NewRouter(chiTransport.NewServer(search, health, 10, 100), apiKeys, zap.NewNop())

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func itemIDs(p Page) []float64 {
	out := make([]float64, 0, len(p.Items))
	for _, it := range p.Items {
		id, _ := it["id"].(float64)
		out = append(out, id)
	}
	return out
}
