package search

import (
	"context"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
)

// Repository executes rendered query plans.
type Repository interface {
	Fetch(ctx context.Context, plan db.QueryPlan) ([]record.Record, error)
	Count(ctx context.Context, plan db.QueryPlan) (int64, error)
}

// Registry resolves entity configurations by name.
type Registry interface {
	Get(name string) (*entity.Entity, error)
}

// Enricher attaches related data to a matched row.
type Enricher interface {
	Name() string
	Defaults() map[string]any
	Enrich(ctx context.Context, rec record.Record) (map[string]any, error)
}

// Policy decides what a failed enrichment does to the page.
type Policy int

const (
	// FailPage fails the whole search with domain.ErrEnrichment.
	FailPage Policy = iota
	// Substitute attaches the enricher's defaults and keeps going.
	Substitute
)

func (p Policy) String() string {
	if p == Substitute {
		return "substitute"
	}
	return "fail_page"
}

// Enrichment binds an enricher to its failure policy.
type Enrichment struct {
	Enricher Enricher
	Policy   Policy
}
