package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

func TestFetch_NeverNil(t *testing.T) {
	repo, _ := newTestRepo(t)
	rows, err := repo.Fetch(context.Background(), db.QueryPlan{Entity: "orders"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil {
		t.Error("Fetch must return an empty slice, not nil")
	}
}

func TestFetch_PassesRows(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.fetchFn = func(_ context.Context, plan db.QueryPlan) ([]record.Record, error) {
		if plan.Limit != 10 {
			t.Errorf("Limit = %d, want 10", plan.Limit)
		}
		return []record.Record{{"id": int64(1)}}, nil
	}
	rows, err := repo.Fetch(context.Background(), db.QueryPlan{Entity: "orders", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len = %d", len(rows))
	}
}

func TestFetch_WrapsError(t *testing.T) {
	repo, ms := newTestRepo(t)
	cause := errors.New("connection reset")
	ms.fetchFn = func(context.Context, db.QueryPlan) ([]record.Record, error) { return nil, cause }

	_, err := repo.Fetch(context.Background(), db.QueryPlan{Entity: "quotes"})
	if !errors.Is(err, cause) {
		t.Fatalf("error = %v, want cause", err)
	}
	if !strings.Contains(err.Error(), "fetch quotes") {
		t.Errorf("error %q lacks context", err)
	}
}

func TestCount_DropsPagination(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.countFn = func(_ context.Context, plan db.QueryPlan) (int64, error) {
		if plan.Limit != 0 || plan.Offset != 0 {
			t.Errorf("count received pagination %d/%d", plan.Limit, plan.Offset)
		}
		return 7, nil
	}
	n, err := repo.Count(context.Background(), db.QueryPlan{Entity: "orders", Limit: 10, Offset: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("n = %d, want 7", n)
	}
}

func TestCount_Errors(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.countFn = func(context.Context, db.QueryPlan) (int64, error) { return -1, nil }
	if _, err := repo.Count(context.Background(), db.QueryPlan{Entity: "orders"}); err == nil {
		t.Error("expected error for negative total")
	}

	cause := errors.New("timeout")
	ms.countFn = func(context.Context, db.QueryPlan) (int64, error) { return 0, cause }
	if _, err := repo.Count(context.Background(), db.QueryPlan{Entity: "orders"}); !errors.Is(err, cause) {
		t.Errorf("error = %v, want cause", err)
	}
}
