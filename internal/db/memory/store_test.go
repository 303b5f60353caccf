package memory

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/mode"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/predicate"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/token"
)

var (
	orderNumber  = field.MustNew("order_number", "o", "o.order_number")
	customerName = field.MustNew("customer_name", "c", "c.name")
)

func plan(q string, limit, offset int, order ...entity.Order) db.QueryPlan {
	if len(order) == 0 {
		order = []entity.Order{{Field: "id"}}
	}
	return db.QueryPlan{
		Entity:  "orders",
		Tree:    predicate.Plan(token.Tokenize(q), []field.Field{orderNumber, customerName}, mode.Partial),
		OrderBy: order,
		Limit:   limit,
		Offset:  offset,
	}
}

func seed() *Store {
	return New(map[string][]record.Record{
		"orders": {
			{"id": int64(2), "order_number": "SO-200", "customer_name": "Bravo LLC"},
			{"id": int64(1), "order_number": "SO-100", "customer_name": "Acme Inc"},
			{"id": int64(3), "order_number": "SO-300", "customer_name": "Acme West"},
		},
	})
}

func TestFetch_FiltersAndOrders(t *testing.T) {
	s := seed()
	rows, err := s.Fetch(context.Background(), plan("acme", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0]["id"] != int64(1) || rows[1]["id"] != int64(3) {
		t.Errorf("unexpected rows %v", rows)
	}

	rows, _ = s.Fetch(context.Background(), plan("so", 10, 0, entity.Order{Field: "id", Desc: true}))
	if len(rows) != 3 || rows[0]["id"] != int64(3) {
		t.Errorf("descending order broken: %v", rows)
	}
}

func TestFetch_Paginates(t *testing.T) {
	s := seed()
	rows, _ := s.Fetch(context.Background(), plan("so", 2, 2))
	if len(rows) != 1 || rows[0]["id"] != int64(3) {
		t.Errorf("unexpected page %v", rows)
	}
	rows, _ = s.Fetch(context.Background(), plan("so", 2, 10))
	if rows == nil || len(rows) != 0 {
		t.Errorf("page past the end = %v, want empty", rows)
	}
}

func TestFetch_OutOfRangeOffset(t *testing.T) {
	s := seed()
	for _, offset := range []int{-8446744073709551616, -1, math.MaxInt} {
		rows, err := s.Fetch(context.Background(), plan("so", 10, offset))
		if err != nil {
			t.Fatalf("offset %d: unexpected error: %v", offset, err)
		}
		if rows == nil || len(rows) != 0 {
			t.Errorf("offset %d: rows = %v, want empty", offset, rows)
		}
	}
}

func TestFetch_ReturnsCopies(t *testing.T) {
	s := seed()
	rows, _ := s.Fetch(context.Background(), plan("100", 10, 0))
	rows[0]["customer_name"] = "changed"
	again, _ := s.Fetch(context.Background(), plan("100", 10, 0))
	if again[0]["customer_name"] != "Acme Inc" {
		t.Error("Fetch must not expose stored rows")
	}
}

func TestCount(t *testing.T) {
	s := seed()
	n, err := s.Count(context.Background(), plan("acme", 1, 0).Unpaged())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := seed().Fetch(ctx, plan("acme", 10, 0))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSelect {
		t.Errorf("expected *db.Error with SELECT op, got %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	s, err := LoadJSON(strings.NewReader(`{"orders":[{"id":1,"order_number":"SO-100","customer_name":"Acme Inc"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := s.Count(context.Background(), plan("so-100", 0, 0))
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}

	if _, err := LoadJSON(strings.NewReader(`[`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestCompare_NullsLast(t *testing.T) {
	if compare(nil, "a") <= 0 || compare("a", nil) >= 0 || compare(nil, nil) != 0 {
		t.Error("NULL must sort after values")
	}
	if compare(int64(2), 10.0) >= 0 {
		t.Error("numbers compare numerically")
	}
}

func TestFetch_OrdersDecimalAmounts(t *testing.T) {
	s := New(map[string][]record.Record{
		"orders": {
			{"id": int64(1), "order_number": "SO-1", "total_amount": decimal.RequireFromString("100.00")},
			{"id": int64(2), "order_number": "SO-2", "total_amount": decimal.RequireFromString("25.50")},
			{"id": int64(3), "order_number": "SO-3", "total_amount": decimal.RequireFromString("9.99")},
			{"id": int64(4), "order_number": "SO-4", "total_amount": int64(30)},
		},
	})

	rows, err := s.Fetch(context.Background(), plan("so", 10, 0, entity.Order{Field: "total_amount"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make([]int64, 0, len(rows))
	for _, r := range rows {
		got = append(got, r["id"].(int64))
	}
	if diff := cmp.Diff([]int64{3, 2, 4, 1}, got); diff != "" {
		t.Errorf("ascending amount order mismatch (-want +got):\n%s", diff)
	}
}
