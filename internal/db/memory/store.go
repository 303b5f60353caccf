// Package memory is a record source that evaluates query plans over rows
// held in memory. Rows are keyed by the entity's logical field names.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
)

// Store holds rows per entity.
type Store struct {
	mu   sync.RWMutex
	rows map[string][]record.Record
}

// New creates a store seeded with rows per entity name.
func New(rows map[string][]record.Record) *Store {
	s := &Store{rows: make(map[string][]record.Record, len(rows))}
	for name, rs := range rows {
		s.rows[name] = append([]record.Record(nil), rs...)
	}
	return s
}

// LoadJSON reads a fixture of the form {"orders": [{...}, ...], ...}.
func LoadJSON(r io.Reader) (*Store, error) {
	var raw map[string][]map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	rows := make(map[string][]record.Record, len(raw))
	for name, rs := range raw {
		for _, r := range rs {
			rows[name] = append(rows[name], record.Record(r))
		}
	}
	return New(rows), nil
}

// Put appends rows for an entity.
func (s *Store) Put(entityName string, rows ...record.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[entityName] = append(s.rows[entityName], rows...)
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Fetch evaluates the plan tree, orders and paginates.
func (s *Store) Fetch(ctx context.Context, plan db.QueryPlan) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	matched := s.match(plan)
	sortRows(matched, plan.OrderBy)

	if plan.Limit > 0 {
		if plan.Offset < 0 || plan.Offset >= len(matched) {
			return []record.Record{}, nil
		}
		end := len(matched)
		if plan.Limit < end-plan.Offset {
			end = plan.Offset + plan.Limit
		}
		matched = matched[plan.Offset:end]
	}

	out := make([]record.Record, 0, len(matched))
	for _, r := range matched {
		out = append(out, r.Clone())
	}
	return out, nil
}

// Count returns the number of matching rows.
func (s *Store) Count(ctx context.Context, plan db.QueryPlan) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return int64(len(s.match(plan))), nil
}

func (s *Store) match(plan db.QueryPlan) []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []record.Record
	for _, r := range s.rows[plan.Entity] {
		if plan.Tree.Eval(r.Get) {
			out = append(out, r)
		}
	}
	return out
}

func sortRows(rows []record.Record, order []entity.Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range order {
			c := compare(rows[i][o.Field], rows[j][o.Field])
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compare orders values the way the relational store does: numbers
// numerically, times chronologically, text lexically, NULL after everything.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return x.Cmp(y)
		}
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// number reads the numeric values rows can carry: Go integers and floats
// from fixtures, decimal.Decimal from numeric columns.
func number(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case decimal.Decimal:
		return x, true
	default:
		return decimal.Decimal{}, false
	}
}
