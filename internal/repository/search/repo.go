package search

import (
	"context"
	"fmt"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

// store is the consumer interface for plan execution (ISP).
type store interface {
	Fetch(ctx context.Context, plan db.QueryPlan) ([]record.Record, error)
	Count(ctx context.Context, plan db.QueryPlan) (int64, error)
}

// Repo implements usecase/search.Repository over a record store.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Fetch executes the paginated plan. The result is never nil.
func (r *Repo) Fetch(ctx context.Context, plan db.QueryPlan) ([]record.Record, error) {
	rows, err := r.store.Fetch(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", plan.Entity, err)
	}
	if rows == nil {
		rows = []record.Record{}
	}
	return rows, nil
}

// Count executes the plan without pagination.
func (r *Repo) Count(ctx context.Context, plan db.QueryPlan) (int64, error) {
	n, err := r.store.Count(ctx, plan.Unpaged())
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", plan.Entity, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("count %s: negative total %d", plan.Entity, n)
	}
	return n, nil
}
