package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/catalog"
	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/db/memory"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	healthuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/health"
	searchuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/search"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// failingRepo fails every record source call.
type failingRepo struct {
	err error
}

func (f *failingRepo) Fetch(context.Context, db.QueryPlan) ([]record.Record, error) { return nil, f.err }
func (f *failingRepo) Count(context.Context, db.QueryPlan) (int64, error)           { return 0, f.err }

// --- Helpers ---

func testOrders() []record.Record {
	return []record.Record{
		{"id": int64(1), "order_number": "SO-100", "customer_name": "Acme Inc", "status": "open", "order_date": "2024-01-15"},
		{"id": int64(2), "order_number": "SO-200", "customer_name": "Bravo LLC", "status": "closed", "order_date": "2024-02-01"},
	}
}

func newTestRouter(t *testing.T, repo searchuc.Repository, dbErr error, apiKeys ...string) http.Handler {
	t.Helper()
	if repo == nil {
		repo = memory.New(map[string][]record.Record{catalog.Orders: testOrders()})
	}
	search := searchuc.New(repo, catalog.Registry())
	health := healthuc.New(&mockPinger{err: dbErr}, nil)
	return NewRouter(NewServer(search, health, 10, 100), apiKeys, zap.NewNop())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

// searchBody mirrors SearchResponse with generic items for assertions.
type searchBody struct {
	Items []map[string]any `json:"items"`
	Meta  MetaResponse     `json:"meta"`
}

func itemIDs(b searchBody) []float64 {
	out := make([]float64, 0, len(b.Items))
	for _, it := range b.Items {
		id, _ := it["id"].(float64)
		out = append(out, id)
	}
	return out
}
