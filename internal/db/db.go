package db

import (
	"context"
	"time"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RecordStore executes rendered query plans.
type RecordStore interface {
	// Fetch returns one page of rows matching the plan, in plan order.
	Fetch(ctx context.Context, plan QueryPlan) ([]record.Record, error)
	// Count returns the number of distinct base rows matching the plan,
	// ignoring its pagination.
	Count(ctx context.Context, plan QueryPlan) (int64, error)
}

// Querier runs ad-hoc parameterized lookups for enrichment.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) ([]record.Record, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store is the relational backend facade.
type Store interface {
	Pinger
	RecordStore
	Querier
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
